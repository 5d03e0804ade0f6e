package directive

// Diagnostic text reproduces the literal directive spelling so error output
// stays byte-identical with the golden corpus.

const misplacedFormatMsg = "`debug:\"...\"` format directive is allowed only on struct and enum fields"

func expectedDirectiveMsg(formatAllowed, boundAllowed bool) string {
	switch {
	case formatAllowed && boundAllowed:
		return "expected either `debug:\"...\"` format directive or `debug:bound = \"...\"` bound directive"
	case formatAllowed:
		return "expected `debug:\"...\"` format directive"
	case boundAllowed:
		return "expected `debug:bound = \"...\"` bound directive"
	default:
		return "`debug:\"...\"` format directive and `debug:bound = \"...\"` bound directive are not allowed here"
	}
}
