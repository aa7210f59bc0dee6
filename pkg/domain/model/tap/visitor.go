package tap

// Visitor handles every kind of Notification. Adding a notification kind adds
// a method here, so every implementation has to handle it before the code
// compiles again.
type Visitor[T any] interface {
	Matched(x Matched) T
	NotMatched(x NotMatched) T
	InvalidMatch(x InvalidMatch) T
}

// Visit calls the method of v that corresponds to the kind of n.
func Visit[T any](n Notification, v Visitor[T]) T {
	a := &visitorAdapter[T]{v: v}
	n.dispatch(a)
	return a.out
}

type dispatcher interface {
	matched(x Matched)
	notMatched(x NotMatched)
	invalidMatch(x InvalidMatch)
}

type visitorAdapter[T any] struct {
	v   Visitor[T]
	out T
}

func (a *visitorAdapter[T]) matched(x Matched)           { a.out = a.v.Matched(x) }
func (a *visitorAdapter[T]) notMatched(x NotMatched)     { a.out = a.v.NotMatched(x) }
func (a *visitorAdapter[T]) invalidMatch(x InvalidMatch) { a.out = a.v.InvalidMatch(x) }
