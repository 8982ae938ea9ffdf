package tokens

// vocabulary maps terms that dominate dune/OCaml diagnostic text to
// hand-calibrated token costs. The table was calibrated against observed
// tokenizer output for a corpus of real compiler messages; it is the primary
// source of accuracy for this domain and is consulted before any length
// heuristic.
var vocabulary = map[string]int{
	// Severity and framing words the compiler prints on almost every line.
	"Error":      1,
	"error":      1,
	"Error:":     2,
	"error:":     2,
	"Warning":    2,
	"warning":    2,
	"Warning:":   3,
	"warning:":   3,
	"Alert":      2,
	"File":       1,
	"file":       1,
	"line":       1,
	"lines":      1,
	"characters": 2,
	"character":  2,

	// Core OCaml type-error vocabulary.
	"Unbound":        2,
	"unbound":        2,
	"module":         1,
	"Module":         1,
	"value":          1,
	"type":           1,
	"constructor":    2,
	"Constructor":    2,
	"expression":     2,
	"pattern":        2,
	"signature":      2,
	"interface":      2,
	"implementation": 3,
	"expected":       2,
	"mismatch":       3,
	"incompatible":   3,
	"definition":     2,
	"declaration":    3,
	"argument":       2,
	"arguments":      2,
	"function":       1,
	"applied":        2,
	"recursive":      3,
	"variant":        2,
	"record":         1,
	"field":          1,
	"label":          2,
	"variable":       2,
	"syntax":         2,
	"Syntax":         2,
	"unexpected":     3,
	"undefined":      3,
	"unused":         2,
	"deprecated":     3,
	"missing":        2,
	"shadowed":       3,

	// Keywords that show up quoted inside messages.
	"let":   1,
	"match": 1,
	"with":  1,
	"in":    1,
	"of":    1,
	"This":  1,
	"has":   1,
	"but":   1,
	"not":   1,

	// Path and extension fragments. Extensions tokenize as a unit.
	".ml":     2,
	".mli":    3,
	".mll":    3,
	".mly":    3,
	"ml":      1,
	"mli":     2,
	"dune":    2,
	"bin":     1,
	"lib":     1,
	"src":     1,
	"test":    1,
	"_build":  3,
	"default": 2,
	"/":       1,
	".":       1,
	"->":      2,
}
