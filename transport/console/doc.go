// Package console connects a mission to a terminal: commands are read from a
// line of input and the single mission report is printed as one line.
//
//	channel := console.NewChannel(os.Stdin, os.Stdout)
//	reporter := console.NewReporter(os.Stdout)
//	err := service.RunApp(ctx, source, channel, reporter)
//
// Output format:
//
//	[OK] 4:3:E        sequence completed (green)
//	[OK] O:1:0:E      stopped before an obstacle (yellow)
//	[ERROR] <reason>  acquisition failed (red)
//
// Colour is disabled when the output is not a terminal.
package console
