package validator

// Source identifies which part of a request a bag came from.
type Source string

const (
	SourceParams  Source = "params"
	SourceCookie  Source = "cookie"
	SourceSession Source = "session"
)

// Tag returns the message prefix of the source. Params are untagged.
func (s Source) Tag() string {
	switch s {
	case SourceCookie:
		return "[cookie] "
	case SourceSession:
		return "[session] "
	default:
		return ""
	}
}

// capabilities lists the rule kinds a source enforces.
// Rules outside the set are skipped with a warning.
type capabilities struct {
	types    bool
	defaults bool
	nested   bool
}

func (s Source) capabilities() capabilities {
	switch s {
	case SourceCookie:
		return capabilities{}
	case SourceSession:
		return capabilities{types: true, nested: true}
	default:
		return capabilities{types: true, defaults: true, nested: true}
	}
}
