// Package render drives the external ffmpeg collaborator that produces
// derived media for the editor: destructively trimmed clips, flattened
// timeline exports, and thumbnails.
//
// The timeline engine itself never touches media bytes. Everything here runs
// behind the Renderer interface so tests and alternate backends can stand in
// for the real binary. Commands are assembled by the builders in command.go,
// progress is parsed from ffmpeg's machine-readable -progress stream, and
// Runner turns requests into fire-and-forget background jobs.
package render
