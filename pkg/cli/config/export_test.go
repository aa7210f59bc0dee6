package config

// NewOutputForTest builds Output without flag parsing.
func NewOutputForTest(format, query, queryFile string) *Output {
	return &Output{
		format:    format,
		query:     query,
		queryFile: queryFile,
	}
}

// NewLoggerForTest builds Logger without flag parsing.
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
