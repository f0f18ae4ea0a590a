package cefetaluno

import (
	"cefetid-backend/lib/restyutil"
)

var instrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput mirrors the portal traffic of every client
// created after this call to the given output. Meant for verbose runs;
// the dumps contain credentials and session cookies, never enable it in
// production.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	instrumentOutput = out
}
