package types

// TapPattern is a user supplied selector identifying zero or more pipeline
// components. It is treated as opaque text and never parsed here.
type TapPattern string

func (x TapPattern) String() string {
	return string(x)
}
