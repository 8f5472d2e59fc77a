// +build !chessicadebug

package board

// AssertValid is a no-op outside chessicadebug builds; Verify is too
// expensive to run on every node of a release search.
func AssertValid(pos *Position) {}
