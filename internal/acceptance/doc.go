// Package acceptance runs the Gherkin scenarios in features/ against the
// cart engine and order assembler.
package acceptance
