// Package file reads mission input from disk.
//
// Two layouts are supported. The pair layout splits the mission over two
// files, one for the grid and one for the vehicle:
//
//	planet.txt            rover.txt
//	5x4                   0,0
//	2,0 0,3 3,2           N
//
// The script layout keeps the whole mission in one file:
//
//	# kata
//	grid 5x4
//	obstacles 2,0 0,3 3,2
//	rover 0,0 N
//	commands RBBLBRF
//
// In both layouts the tokens go through the codec unchanged, so malformed
// values fail with the same tagged errors as any other input.
package file
