// Package terminus models a discovered PLDM terminus and the records it
// publishes.
//
// A Terminus holds the capability bitmaps reported during discovery and the
// raw PDRs fetched from the endpoint. ParsePDRs runs a decode pass over the
// raw records and rebuilds the sensor name and terminus name caches; one
// malformed record is skipped without affecting the others.
//
//	t := terminus.New(1, capability.NewTypeSet(pldm.TypeBase, pldm.TypePlatform))
//	t.SetSupportedCommands(cmds)
//	for _, raw := range fetched {
//		t.AppendPDR(raw)
//	}
//	report := t.ParsePDRs()
//	name, ok := t.Name()
//
// A Registry tracks the termini of a discovery session by TID and can run
// their decode passes concurrently.
package terminus
