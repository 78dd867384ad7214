package factors

import _ "embed"

// Versioned emission-factor dataset, DESNZ 2024 company-reporting
// conversion factors. Regenerated annually from the published workbook;
// the catalog version string travels with every calculation that uses it.

//go:embed data/desnz-2024.json
var rawFactorJSON []byte
