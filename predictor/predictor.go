// Package predictor implements the two-level tournament branch predictor
// and indirect-jump target cache.
package predictor

import "github.com/rv32x/qcpu-sim/isa"

const (
	takenPHTSize    = 1024
	takenPHTMask    = takenPHTSize - 1
	selectorPHTSize = 256
	selectorPHTMask = selectorPHTSize - 1
	jalrTargetSize  = 1024
	jalrTargetMask  = jalrTargetSize - 1
	ghBits          = 10
	ghMask          = 1<<ghBits - 1
)

// Predictor holds the fixed-size predictor tables. Zero value is not
// ready for use; call New.
type Predictor struct {
	takenPHT    [takenPHTSize]uint8
	untakenPHT  [takenPHTSize]uint8
	selectorPHT [selectorPHTSize]uint8
	jalrTarget  [jalrTargetSize]uint32
	gh          uint32

	JalrFlushes       uint64
	JalrInvocations   uint64
	BranchFlushes     uint64
	BranchInvocations uint64
}

// New returns a predictor with the reference implementation's initial bias:
// weakly-taken in the taken table, weakly-not-taken in the untaken table,
// selector favoring the taken table.
func New() *Predictor {
	p := &Predictor{}
	for i := range p.takenPHT {
		p.takenPHT[i] = 2
		p.untakenPHT[i] = 1
	}
	for i := range p.selectorPHT {
		p.selectorPHT[i] = 2
	}
	return p
}

// Predict returns the predicted next byte-PC for op at pc. Only JALR and
// conditional branches (OpB) consult the tables; every other op predicts
// fall-through.
func (p *Predictor) Predict(d isa.Decoded, pc uint32) uint32 {
	pci := pc / 4
	fallthroughPC := pc + 4

	switch {
	case d.Op == isa.Jalr:
		if target := p.jalrTarget[pci&jalrTargetMask]; target > 0 {
			return target
		}
		return fallthroughPC

	case d.Type == isa.OpB:
		h := p.gh ^ pci
		takenIdx := h & takenPHTMask
		selectorIdx := h & selectorPHTMask

		var counter uint8
		if p.selectorPHT[selectorIdx] >= 2 {
			counter = p.takenPHT[takenIdx]
		} else {
			counter = p.untakenPHT[takenIdx]
		}
		if counter >= 2 {
			return pc + uint32(d.Imm)
		}
		return fallthroughPC

	default:
		return fallthroughPC
	}
}

// Update records the resolved outcome of op and returns whether the
// prediction was wrong (a flush).
func (p *Predictor) Update(d isa.Decoded, pc, predictedPC, actualPC uint32) bool {
	pci := pc / 4

	switch {
	case d.Op == isa.Jalr:
		p.JalrInvocations++
		p.jalrTarget[pci&jalrTargetMask] = actualPC
		flushed := actualPC != predictedPC
		if flushed {
			p.JalrFlushes++
		}
		return flushed

	case d.Type == isa.OpB:
		p.BranchInvocations++
		taken := actualPC != pc+4
		p.gh = ((p.gh << 1) | boolBit(taken)) & ghMask

		h := p.gh ^ pci
		takenIdx := h & takenPHTMask
		selectorIdx := h & selectorPHTMask

		flushed := actualPC != predictedPC
		if flushed {
			p.takenPHT[takenIdx] = satInc(p.takenPHT[takenIdx])
			p.selectorPHT[selectorIdx] = satInc(p.selectorPHT[selectorIdx])
		} else {
			p.untakenPHT[takenIdx] = satDec(p.untakenPHT[takenIdx])
			p.selectorPHT[selectorIdx] = satDec(p.selectorPHT[selectorIdx])
		}
		if flushed {
			p.BranchFlushes++
		}
		return flushed

	default:
		return false
	}
}

func satInc(c uint8) uint8 {
	if c < 3 {
		return c + 1
	}
	return c
}

func satDec(c uint8) uint8 {
	if c > 0 {
		return c - 1
	}
	return c
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
