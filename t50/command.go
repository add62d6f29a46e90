package t50

// Command codes. Identical across both transports; only the frame
// layout and endianness used to carry them differ.
const (
	cmdCheckDevice    = 0x12 // presence probe
	cmdInquirySta     = 0x11 // status, polled frequently
	cmdStartPrint     = 0x13 // begin a page
	cmdStopPrint      = 0x14 // abort
	cmdReturnMat      = 0x30 // material info
	cmdRdDevName      = 0x16 // BT only
	cmdReadRev        = 0x17 // BT only
	cmdReadFWVer      = 0xC5 // BT only
	cmdNextZippedBulk = 0x5C // two-parameter: block size, block count
	cmdBufFull        = 0x10 // two-parameter: compressed length, speed
	cmdPaperSkip      = 0x2E // present in the command set, unused by the core flow
	cmdSetRFIDData    = 0x5D // present in the command set, unused by the core flow
)
