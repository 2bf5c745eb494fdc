// Package consumer wires the parser into a document-consumption pipeline.
//
// Declarations advertise which mime types a parser claims, a factory for
// building it, and a priority weight the host uses to arbitrate between
// competing parser plugins. The Consumer polls a consume directory, picks
// the winning parser for each file, extracts a thumbnail and text excerpt,
// and stores the resulting document record.
package consumer
