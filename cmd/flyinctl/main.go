// Idiomatic entrypoint for the flyinctl Cobra CLI; command wiring lives in root.go.
package main

func main() {
	Execute()
}
