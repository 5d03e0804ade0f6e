package model

// DiagKind classifies a diagnostic. Message text is fixed per kind and scope
// so diagnostic output stays byte-identical across runs.
type DiagKind int

const (
	MalformedDirective DiagKind = iota
	MissingDirectiveBody
	UnrecognizedKey
	MisplacedFormatDirective
	DirectiveNotAllowedHere
	DuplicateDirective
	BoundAlreadySpecifiedAtTypeScope
	BoundAlreadySpecifiedForType
)

var diagKindNames = map[DiagKind]string{
	MalformedDirective:               "MalformedDirective",
	MissingDirectiveBody:             "MissingDirectiveBody",
	UnrecognizedKey:                  "UnrecognizedKey",
	MisplacedFormatDirective:         "MisplacedFormatDirective",
	DirectiveNotAllowedHere:          "DirectiveNotAllowedHere",
	DuplicateDirective:               "DuplicateDirective",
	BoundAlreadySpecifiedAtTypeScope: "BoundAlreadySpecifiedAtTypeScope",
	BoundAlreadySpecifiedForType:     "BoundAlreadySpecifiedForType",
}

func (k DiagKind) String() string {
	if name, ok := diagKindNames[k]; ok {
		return name
	}
	return "UnknownDiagnostic"
}

// SecondarySpan cross-references a prior occurrence involved in a conflict.
type SecondarySpan struct {
	Span Span
	Note string
}

// Diagnostic is terminal for one definition's generation pass. It is a value,
// not an error: infrastructure failures use error, analysis findings use this.
type Diagnostic struct {
	Kind      DiagKind
	Message   string
	Span      Span
	Secondary []SecondarySpan
}
