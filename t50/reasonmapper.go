package t50

// Reason categories a StatusSink receives, matching the vocabulary the
// host printing system expects of any backend, not specific to this
// driver.
const (
	ReasonCoverOpen   = "cover-open"
	ReasonMediaEmpty  = "media-empty"
	ReasonMediaJam    = "media-jam"
	ReasonMediaNeeded = "media-needed"
	ReasonOther       = "other"
)

// MapReasons turns a parsed Status into the reason categories a
// StatusSink understands. It is a pure mapping with no I/O: given the
// same Status it always returns the same set, in a fixed order.
func MapReasons(s *Status) []string {
	var out []string
	if s.CoverOpen {
		out = append(out, ReasonCoverOpen)
	}
	if s.LabelEnd || s.RibbonEnd {
		out = append(out, ReasonMediaEmpty)
	}
	if s.LabelRWError || s.RibbonRWError {
		out = append(out, ReasonMediaJam)
	}
	if s.LabelNotInstalled {
		out = append(out, ReasonMediaNeeded)
	}
	if s.LabelModeError || s.HeadTempHigh || s.LowBattery || s.DeviceBusy || s.BufFull || s.InsertUSB {
		out = append(out, ReasonOther)
	}
	return out
}
