package model

// Constraint is one finalized clause of the generated implementation's
// type-parameter contract.
type Constraint struct {
	// Param is the generic parameter the clause constrains, or empty when
	// an override clause does not name a bare parameter (e.g. a member
	// projection). Such clauses survive verbatim into the generated
	// contract comment.
	Param string
	// Clause is the full clause text, e.g. "T gendebug.Debuggable".
	Clause string
}

// GenerationPlan is the validated, conflict-free input handed to the emitter.
// No plan exists for a definition that produced any diagnostic.
type GenerationPlan struct {
	Def         *TypeDefinition
	Constraints []Constraint
}
