package main

import "github.com/PhonologicalCorpusTools/SLPAA-sub002/cmd"

func main() {
	cmd.Execute()
}
