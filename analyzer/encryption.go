package analyzer

import "github.com/fpgakit/xbit/object"

// EncryptionAnalyzer detects whether a bitstream carries encrypted
// configuration data by inspecting the control register's dec bit.
//
// When the analyzer reports true, the FDRI payload contents are
// ciphertext and descending into them yields no usable structure.
type EncryptionAnalyzer struct {
	ctx *object.Context
}

// NewEncryptionAnalyzer creates an encryption analyzer over the context.
func NewEncryptionAnalyzer(ctx *object.Context) *EncryptionAnalyzer {
	return &EncryptionAnalyzer{ctx: ctx}
}

// Analyze returns true if any Ctl register packet has dec set.
func (a *EncryptionAnalyzer) Analyze() (bool, error) {
	bs, err := unpackBitstream(a.ctx)
	if err != nil {
		return false, err
	}

	for _, packet := range bs.PacketsByRegisterName("Ctl") {
		payload, err := unpackType1Payload(packet)
		if err != nil {
			return false, err
		}
		dec := payload.Attribute("dec")
		if dec != nil && dec.Value() == 1 {
			return true, nil
		}
	}

	return false, nil
}
