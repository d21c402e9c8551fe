package data

import _ "embed"

//go:embed cabs.json
var CabData []byte
