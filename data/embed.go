package data

import (
	_ "embed"
)

//go:embed sample_tests.json
var SampleTests []byte
