package spawn

import "github.com/qolproject/qnxcompat/abi"

// Inheritance descriptor flag bits, numerically identical to the QNX
// SPAWN_* encoding.
const (
	SetGroup      uint32 = 0x00000001
	SetSigMask    uint32 = 0x00000002
	SetSigDef     uint32 = 0x00000004
	SetSigIgn     uint32 = 0x00000008
	SetMemPart    uint32 = 0x00000010
	SetSchedPart  uint32 = 0x00000020
	SetScheduler  uint32 = 0x00000040
	TCSetPGroup   uint32 = 0x00000080
	SetND         uint32 = 0x00000100
	SetSID        uint32 = 0x00000200
	ExplicitSched uint32 = 0x00000400
	ExplicitCPU   uint32 = 0x00000800
	SetStackMax   uint32 = 0x00001000
	NoZombie      uint32 = 0x00002000
	Debug         uint32 = 0x00004000
	Hold          uint32 = 0x00008000
	Exec          uint32 = 0x00010000
	SearchPath    uint32 = 0x00020000
	CheckScript   uint32 = 0x00040000
	AlignDefault  uint32 = 0x00000000
	AlignFault    uint32 = 0x01000000
	AlignNoFault  uint32 = 0x02000000
	AlignMask     uint32 = 0x03000000
	Paddr64Safe   uint32 = 0x04000000
)

// Inheritance is the QNX spawn configuration block. Flags gates every
// other field: a field whose flag bit is clear is never consulted.
type Inheritance struct {
	Flags        uint32
	ProcessGroup int
	SigMask      abi.SigSet
	SigDefault   abi.SigSet
	SigIgnore    abi.SigSet
	StackMax     uint32
	Policy       int32
	Node         uint32
	RunMask      uint32
	Param        [48]byte
}

// FDMap is the descriptor remap table: the value at index i is the parent
// descriptor the child sees as descriptor i. An empty map leaves the
// standard descriptors inherited as-is.
type FDMap []int
