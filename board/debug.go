// +build chessicadebug

package board

// AssertValid panics if pos fails Verify. Only compiled into chessicadebug
// builds, used to catch move-generator and make/unmake bugs as they happen
// rather than as a garbled position several moves later.
func AssertValid(pos *Position) {
	if err := pos.Verify(); err != nil {
		panic(err)
	}
}
