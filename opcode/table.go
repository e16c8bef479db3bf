package opcode

// Group classifies an opcode by function. It is documentation only and is
// never written to the wire.
type Group uint8

const (
	GroupNone        Group = iota // unassigned tag
	GroupField                    // base field arithmetic, comparison and assertions
	GroupExt2                     // quadratic extension field arithmetic
	GroupU32                      // 32-bit integer operations
	GroupStack                    // drop, dup, swap, movup, movdn, conditional ops
	GroupIO                       // push, environment, memory, locals, advice provider
	GroupCrypto                   // hashing and Merkle tree operations
	GroupProof                    // STARK proof verification helpers
	GroupExec                     // exec, call and syscall
	GroupControlFlow              // if/else, repeat, while
)

var groupNames = [...]string{
	GroupNone:        "none",
	GroupField:       "field",
	GroupExt2:        "ext2",
	GroupU32:         "u32",
	GroupStack:       "stack",
	GroupIO:          "io",
	GroupCrypto:      "crypto",
	GroupProof:       "proof",
	GroupExec:        "exec",
	GroupControlFlow: "control_flow",
}

// groupRanges holds the inclusive tag range reserved for each group.
var groupRanges = [...][2]OpCode{
	GroupField:       {Assert, IsOdd},
	GroupExt2:        {Ext2Add, Ext2Inv},
	GroupU32:         {U32Test, U32UncheckedMax},
	GroupStack:       {Drop, CDropW},
	GroupIO:          {PushU8, AdvInject},
	GroupCrypto:      {Hash, MTreeVerify},
	GroupProof:       {FriExt2Fold4, FriExt2Fold4},
	GroupExec:        {ExecLocal, SysCall},
	GroupControlFlow: {IfElse, While},
}

// Groups returns every assigned group in tag order.
func Groups() []Group {
	return []Group{
		GroupField, GroupExt2, GroupU32, GroupStack, GroupIO,
		GroupCrypto, GroupProof, GroupExec, GroupControlFlow,
	}
}

func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return "none"
}

// Range returns the inclusive tag range of the group.
// GroupNone and unknown groups report ok=false.
func (g Group) Range() (lo, hi OpCode, ok bool) {
	if g == GroupNone || int(g) >= len(groupRanges) {
		return 0, 0, false
	}
	r := groupRanges[g]
	return r[0], r[1], true
}

// ParseGroup returns the group with the given name.
func ParseGroup(name string) (Group, bool) {
	for _, g := range Groups() {
		if groupNames[g] == name {
			return g, true
		}
	}
	return GroupNone, false
}

// ImmKind describes the operand payload that follows a tag on the wire.
// The registry never reads operands; this is metadata for the caller.
type ImmKind uint8

const (
	ImmNone        ImmKind = iota
	ImmU8                  // one byte
	ImmU16                 // little-endian u16
	ImmU32                 // little-endian u32
	ImmFelt                // field element as canonical little-endian u64
	ImmWord                // four field elements
	ImmU8List              // u8 count, then count bytes
	ImmU16List             // u8 count, then count u16 values
	ImmU32List             // u8 count, then count u32 values
	ImmFeltList            // u8 count, then count field elements
	ImmProcedureID         // 24-byte procedure identifier
	ImmDigest              // 32-byte MAST root digest
	ImmBranches            // then-body followed by else-body
	ImmCountedBody         // u32 iteration count followed by a body
	ImmBody                // a single body
)

var immNames = [...]string{
	ImmNone:        "none",
	ImmU8:          "u8",
	ImmU16:         "u16",
	ImmU32:         "u32",
	ImmFelt:        "felt",
	ImmWord:        "word",
	ImmU8List:      "u8_list",
	ImmU16List:     "u16_list",
	ImmU32List:     "u32_list",
	ImmFeltList:    "felt_list",
	ImmProcedureID: "procedure_id",
	ImmDigest:      "digest",
	ImmBranches:    "branches",
	ImmCountedBody: "counted_body",
	ImmBody:        "body",
}

func (k ImmKind) String() string {
	if int(k) < len(immNames) {
		return immNames[k]
	}
	return "unknown"
}

// ParseImmKind returns the operand kind with the given name.
func ParseImmKind(name string) (ImmKind, bool) {
	for k, n := range immNames {
		if n == name {
			return ImmKind(k), true
		}
	}
	return ImmNone, false
}

// Size returns the fixed operand size in bytes, or -1 when the payload is
// length-prefixed or nested.
func (k ImmKind) Size() int {
	switch k {
	case ImmNone:
		return 0
	case ImmU8:
		return 1
	case ImmU16:
		return 2
	case ImmU32:
		return 4
	case ImmFelt:
		return 8
	case ImmWord:
		return 32
	case ImmProcedureID:
		return 24
	case ImmDigest:
		return 32
	default:
		return -1
	}
}

// IsControlFlow reports whether the payload contains nested bodies.
func (k ImmKind) IsControlFlow() bool {
	return k == ImmBranches || k == ImmCountedBody || k == ImmBody
}

type info struct {
	name  string
	group Group
	imm   ImmKind
}

// table is indexed by tag. An entry with an empty name is unassigned.
// Keys are the OpCode constants, so two variants sharing a value fail to compile.
var table = [256]info{
	// Field operations
	Assert:       {"Assert", GroupField, ImmNone},
	AssertEq:     {"AssertEq", GroupField, ImmNone},
	AssertEqw:    {"AssertEqw", GroupField, ImmNone},
	Assertz:      {"Assertz", GroupField, ImmNone},
	Add:          {"Add", GroupField, ImmNone},
	AddImm:       {"AddImm", GroupField, ImmFelt},
	Sub:          {"Sub", GroupField, ImmNone},
	SubImm:       {"SubImm", GroupField, ImmFelt},
	Mul:          {"Mul", GroupField, ImmNone},
	MulImm:       {"MulImm", GroupField, ImmFelt},
	Div:          {"Div", GroupField, ImmNone},
	DivImm:       {"DivImm", GroupField, ImmFelt},
	Neg:          {"Neg", GroupField, ImmNone},
	Inv:          {"Inv", GroupField, ImmNone},
	Incr:         {"Incr", GroupField, ImmNone},
	Pow2:         {"Pow2", GroupField, ImmNone},
	Exp:          {"Exp", GroupField, ImmNone},
	ExpImm:       {"ExpImm", GroupField, ImmFelt},
	ExpBitLength: {"ExpBitLength", GroupField, ImmU8},
	Not:          {"Not", GroupField, ImmNone},
	And:          {"And", GroupField, ImmNone},
	Or:           {"Or", GroupField, ImmNone},
	Xor:          {"Xor", GroupField, ImmNone},
	Eq:           {"Eq", GroupField, ImmNone},
	EqImm:        {"EqImm", GroupField, ImmFelt},
	Neq:          {"Neq", GroupField, ImmNone},
	NeqImm:       {"NeqImm", GroupField, ImmFelt},
	Eqw:          {"Eqw", GroupField, ImmNone},
	Lt:           {"Lt", GroupField, ImmNone},
	Lte:          {"Lte", GroupField, ImmNone},
	Gt:           {"Gt", GroupField, ImmNone},
	Gte:          {"Gte", GroupField, ImmNone},
	IsOdd:        {"IsOdd", GroupField, ImmNone},

	// Extension field (ext2) operations
	Ext2Add: {"Ext2Add", GroupExt2, ImmNone},
	Ext2Sub: {"Ext2Sub", GroupExt2, ImmNone},
	Ext2Mul: {"Ext2Mul", GroupExt2, ImmNone},
	Ext2Div: {"Ext2Div", GroupExt2, ImmNone},
	Ext2Neg: {"Ext2Neg", GroupExt2, ImmNone},
	Ext2Inv: {"Ext2Inv", GroupExt2, ImmNone},

	// u32 operations
	U32Test:               {"U32Test", GroupU32, ImmNone},
	U32TestW:              {"U32TestW", GroupU32, ImmNone},
	U32Assert:             {"U32Assert", GroupU32, ImmNone},
	U32Assert2:            {"U32Assert2", GroupU32, ImmNone},
	U32AssertW:            {"U32AssertW", GroupU32, ImmNone},
	U32Split:              {"U32Split", GroupU32, ImmNone},
	U32Cast:               {"U32Cast", GroupU32, ImmNone},
	U32CheckedAdd:         {"U32CheckedAdd", GroupU32, ImmNone},
	U32CheckedAddImm:      {"U32CheckedAddImm", GroupU32, ImmU32},
	U32WrappingAdd:        {"U32WrappingAdd", GroupU32, ImmNone},
	U32WrappingAddImm:     {"U32WrappingAddImm", GroupU32, ImmU32},
	U32OverflowingAdd:     {"U32OverflowingAdd", GroupU32, ImmNone},
	U32OverflowingAddImm:  {"U32OverflowingAddImm", GroupU32, ImmU32},
	U32OverflowingAdd3:    {"U32OverflowingAdd3", GroupU32, ImmNone},
	U32WrappingAdd3:       {"U32WrappingAdd3", GroupU32, ImmNone},
	U32CheckedSub:         {"U32CheckedSub", GroupU32, ImmNone},
	U32CheckedSubImm:      {"U32CheckedSubImm", GroupU32, ImmU32},
	U32WrappingSub:        {"U32WrappingSub", GroupU32, ImmNone},
	U32WrappingSubImm:     {"U32WrappingSubImm", GroupU32, ImmU32},
	U32OverflowingSub:     {"U32OverflowingSub", GroupU32, ImmNone},
	U32OverflowingSubImm:  {"U32OverflowingSubImm", GroupU32, ImmU32},
	U32CheckedMul:         {"U32CheckedMul", GroupU32, ImmNone},
	U32CheckedMulImm:      {"U32CheckedMulImm", GroupU32, ImmU32},
	U32WrappingMul:        {"U32WrappingMul", GroupU32, ImmNone},
	U32WrappingMulImm:     {"U32WrappingMulImm", GroupU32, ImmU32},
	U32OverflowingMul:     {"U32OverflowingMul", GroupU32, ImmNone},
	U32OverflowingMulImm:  {"U32OverflowingMulImm", GroupU32, ImmU32},
	U32OverflowingMadd:    {"U32OverflowingMadd", GroupU32, ImmNone},
	U32WrappingMadd:       {"U32WrappingMadd", GroupU32, ImmNone},
	U32CheckedDiv:         {"U32CheckedDiv", GroupU32, ImmNone},
	U32CheckedDivImm:      {"U32CheckedDivImm", GroupU32, ImmU32},
	U32UncheckedDiv:       {"U32UncheckedDiv", GroupU32, ImmNone},
	U32UncheckedDivImm:    {"U32UncheckedDivImm", GroupU32, ImmU32},
	U32CheckedMod:         {"U32CheckedMod", GroupU32, ImmNone},
	U32CheckedModImm:      {"U32CheckedModImm", GroupU32, ImmU32},
	U32UncheckedMod:       {"U32UncheckedMod", GroupU32, ImmNone},
	U32UncheckedModImm:    {"U32UncheckedModImm", GroupU32, ImmU32},
	U32CheckedDivMod:      {"U32CheckedDivMod", GroupU32, ImmNone},
	U32CheckedDivModImm:   {"U32CheckedDivModImm", GroupU32, ImmU32},
	U32UncheckedDivMod:    {"U32UncheckedDivMod", GroupU32, ImmNone},
	U32UncheckedDivModImm: {"U32UncheckedDivModImm", GroupU32, ImmU32},
	U32CheckedAnd:         {"U32CheckedAnd", GroupU32, ImmNone},
	U32CheckedOr:          {"U32CheckedOr", GroupU32, ImmNone},
	U32CheckedXor:         {"U32CheckedXor", GroupU32, ImmNone},
	U32CheckedNot:         {"U32CheckedNot", GroupU32, ImmNone},
	U32CheckedShr:         {"U32CheckedShr", GroupU32, ImmNone},
	U32CheckedShrImm:      {"U32CheckedShrImm", GroupU32, ImmU8},
	U32UncheckedShr:       {"U32UncheckedShr", GroupU32, ImmNone},
	U32UncheckedShrImm:    {"U32UncheckedShrImm", GroupU32, ImmU8},
	U32CheckedShl:         {"U32CheckedShl", GroupU32, ImmNone},
	U32CheckedShlImm:      {"U32CheckedShlImm", GroupU32, ImmU8},
	U32UncheckedShl:       {"U32UncheckedShl", GroupU32, ImmNone},
	U32UncheckedShlImm:    {"U32UncheckedShlImm", GroupU32, ImmU8},
	U32CheckedRotr:        {"U32CheckedRotr", GroupU32, ImmNone},
	U32CheckedRotrImm:     {"U32CheckedRotrImm", GroupU32, ImmU8},
	U32UncheckedRotr:      {"U32UncheckedRotr", GroupU32, ImmNone},
	U32UncheckedRotrImm:   {"U32UncheckedRotrImm", GroupU32, ImmU8},
	U32CheckedRotl:        {"U32CheckedRotl", GroupU32, ImmNone},
	U32CheckedRotlImm:     {"U32CheckedRotlImm", GroupU32, ImmU8},
	U32UncheckedRotl:      {"U32UncheckedRotl", GroupU32, ImmNone},
	U32UncheckedRotlImm:   {"U32UncheckedRotlImm", GroupU32, ImmU8},
	U32CheckedPopcnt:      {"U32CheckedPopcnt", GroupU32, ImmNone},
	U32UncheckedPopcnt:    {"U32UncheckedPopcnt", GroupU32, ImmNone},
	U32CheckedEq:          {"U32CheckedEq", GroupU32, ImmNone},
	U32CheckedEqImm:       {"U32CheckedEqImm", GroupU32, ImmU32},
	U32CheckedNeq:         {"U32CheckedNeq", GroupU32, ImmNone},
	U32CheckedNeqImm:      {"U32CheckedNeqImm", GroupU32, ImmU32},
	U32CheckedLt:          {"U32CheckedLt", GroupU32, ImmNone},
	U32UncheckedLt:        {"U32UncheckedLt", GroupU32, ImmNone},
	U32CheckedLte:         {"U32CheckedLte", GroupU32, ImmNone},
	U32UncheckedLte:       {"U32UncheckedLte", GroupU32, ImmNone},
	U32CheckedGt:          {"U32CheckedGt", GroupU32, ImmNone},
	U32UncheckedGt:        {"U32UncheckedGt", GroupU32, ImmNone},
	U32CheckedGte:         {"U32CheckedGte", GroupU32, ImmNone},
	U32UncheckedGte:       {"U32UncheckedGte", GroupU32, ImmNone},
	U32CheckedMin:         {"U32CheckedMin", GroupU32, ImmNone},
	U32UncheckedMin:       {"U32UncheckedMin", GroupU32, ImmNone},
	U32CheckedMax:         {"U32CheckedMax", GroupU32, ImmNone},
	U32UncheckedMax:       {"U32UncheckedMax", GroupU32, ImmNone},

	// Stack manipulation
	Drop:    {"Drop", GroupStack, ImmNone},
	DropW:   {"DropW", GroupStack, ImmNone},
	PadW:    {"PadW", GroupStack, ImmNone},
	Dup0:    {"Dup0", GroupStack, ImmNone},
	Dup1:    {"Dup1", GroupStack, ImmNone},
	Dup2:    {"Dup2", GroupStack, ImmNone},
	Dup3:    {"Dup3", GroupStack, ImmNone},
	Dup4:    {"Dup4", GroupStack, ImmNone},
	Dup5:    {"Dup5", GroupStack, ImmNone},
	Dup6:    {"Dup6", GroupStack, ImmNone},
	Dup7:    {"Dup7", GroupStack, ImmNone},
	Dup8:    {"Dup8", GroupStack, ImmNone},
	Dup9:    {"Dup9", GroupStack, ImmNone},
	Dup10:   {"Dup10", GroupStack, ImmNone},
	Dup11:   {"Dup11", GroupStack, ImmNone},
	Dup12:   {"Dup12", GroupStack, ImmNone},
	Dup13:   {"Dup13", GroupStack, ImmNone},
	Dup14:   {"Dup14", GroupStack, ImmNone},
	Dup15:   {"Dup15", GroupStack, ImmNone},
	DupW0:   {"DupW0", GroupStack, ImmNone},
	DupW1:   {"DupW1", GroupStack, ImmNone},
	DupW2:   {"DupW2", GroupStack, ImmNone},
	DupW3:   {"DupW3", GroupStack, ImmNone},
	Swap1:   {"Swap1", GroupStack, ImmNone},
	Swap2:   {"Swap2", GroupStack, ImmNone},
	Swap3:   {"Swap3", GroupStack, ImmNone},
	Swap4:   {"Swap4", GroupStack, ImmNone},
	Swap5:   {"Swap5", GroupStack, ImmNone},
	Swap6:   {"Swap6", GroupStack, ImmNone},
	Swap7:   {"Swap7", GroupStack, ImmNone},
	Swap8:   {"Swap8", GroupStack, ImmNone},
	Swap9:   {"Swap9", GroupStack, ImmNone},
	Swap10:  {"Swap10", GroupStack, ImmNone},
	Swap11:  {"Swap11", GroupStack, ImmNone},
	Swap12:  {"Swap12", GroupStack, ImmNone},
	Swap13:  {"Swap13", GroupStack, ImmNone},
	Swap14:  {"Swap14", GroupStack, ImmNone},
	Swap15:  {"Swap15", GroupStack, ImmNone},
	SwapW1:  {"SwapW1", GroupStack, ImmNone},
	SwapW2:  {"SwapW2", GroupStack, ImmNone},
	SwapW3:  {"SwapW3", GroupStack, ImmNone},
	SwapDW:  {"SwapDW", GroupStack, ImmNone},
	MovUp2:  {"MovUp2", GroupStack, ImmNone},
	MovUp3:  {"MovUp3", GroupStack, ImmNone},
	MovUp4:  {"MovUp4", GroupStack, ImmNone},
	MovUp5:  {"MovUp5", GroupStack, ImmNone},
	MovUp6:  {"MovUp6", GroupStack, ImmNone},
	MovUp7:  {"MovUp7", GroupStack, ImmNone},
	MovUp8:  {"MovUp8", GroupStack, ImmNone},
	MovUp9:  {"MovUp9", GroupStack, ImmNone},
	MovUp10: {"MovUp10", GroupStack, ImmNone},
	MovUp11: {"MovUp11", GroupStack, ImmNone},
	MovUp12: {"MovUp12", GroupStack, ImmNone},
	MovUp13: {"MovUp13", GroupStack, ImmNone},
	MovUp14: {"MovUp14", GroupStack, ImmNone},
	MovUp15: {"MovUp15", GroupStack, ImmNone},
	MovUpW2: {"MovUpW2", GroupStack, ImmNone},
	MovUpW3: {"MovUpW3", GroupStack, ImmNone},
	MovDn2:  {"MovDn2", GroupStack, ImmNone},
	MovDn3:  {"MovDn3", GroupStack, ImmNone},
	MovDn4:  {"MovDn4", GroupStack, ImmNone},
	MovDn5:  {"MovDn5", GroupStack, ImmNone},
	MovDn6:  {"MovDn6", GroupStack, ImmNone},
	MovDn7:  {"MovDn7", GroupStack, ImmNone},
	MovDn8:  {"MovDn8", GroupStack, ImmNone},
	MovDn9:  {"MovDn9", GroupStack, ImmNone},
	MovDn10: {"MovDn10", GroupStack, ImmNone},
	MovDn11: {"MovDn11", GroupStack, ImmNone},
	MovDn12: {"MovDn12", GroupStack, ImmNone},
	MovDn13: {"MovDn13", GroupStack, ImmNone},
	MovDn14: {"MovDn14", GroupStack, ImmNone},
	MovDn15: {"MovDn15", GroupStack, ImmNone},
	MovDnW2: {"MovDnW2", GroupStack, ImmNone},
	MovDnW3: {"MovDnW3", GroupStack, ImmNone},
	CSwap:   {"CSwap", GroupStack, ImmNone},
	CSwapW:  {"CSwapW", GroupStack, ImmNone},
	CDrop:   {"CDrop", GroupStack, ImmNone},
	CDropW:  {"CDropW", GroupStack, ImmNone},

	// Input / output and memory
	PushU8:       {"PushU8", GroupIO, ImmU8},
	PushU16:      {"PushU16", GroupIO, ImmU16},
	PushU32:      {"PushU32", GroupIO, ImmU32},
	PushFelt:     {"PushFelt", GroupIO, ImmFelt},
	PushWord:     {"PushWord", GroupIO, ImmWord},
	PushU8List:   {"PushU8List", GroupIO, ImmU8List},
	PushU16List:  {"PushU16List", GroupIO, ImmU16List},
	PushU32List:  {"PushU32List", GroupIO, ImmU32List},
	PushFeltList: {"PushFeltList", GroupIO, ImmFeltList},
	Locaddr:      {"Locaddr", GroupIO, ImmU16},
	Sdepth:       {"Sdepth", GroupIO, ImmNone},
	Caller:       {"Caller", GroupIO, ImmNone},
	Clk:          {"Clk", GroupIO, ImmNone},
	MemLoad:      {"MemLoad", GroupIO, ImmNone},
	MemLoadImm:   {"MemLoadImm", GroupIO, ImmU32},
	MemLoadW:     {"MemLoadW", GroupIO, ImmNone},
	MemLoadWImm:  {"MemLoadWImm", GroupIO, ImmU32},
	LocLoad:      {"LocLoad", GroupIO, ImmU16},
	LocLoadW:     {"LocLoadW", GroupIO, ImmU16},
	MemStore:     {"MemStore", GroupIO, ImmNone},
	MemStoreImm:  {"MemStoreImm", GroupIO, ImmU32},
	LocStore:     {"LocStore", GroupIO, ImmU16},
	MemStoreW:    {"MemStoreW", GroupIO, ImmNone},
	MemStoreWImm: {"MemStoreWImm", GroupIO, ImmU32},
	LocStoreW:    {"LocStoreW", GroupIO, ImmU16},
	MemStream:    {"MemStream", GroupIO, ImmNone},
	AdvPipe:      {"AdvPipe", GroupIO, ImmNone},
	AdvPush:      {"AdvPush", GroupIO, ImmU8},
	AdvLoadW:     {"AdvLoadW", GroupIO, ImmNone},
	AdvInject:    {"AdvInject", GroupIO, ImmU8},

	// Cryptographic operations
	Hash:        {"Hash", GroupCrypto, ImmNone},
	HMerge:      {"HMerge", GroupCrypto, ImmNone},
	HPerm:       {"HPerm", GroupCrypto, ImmNone},
	MTreeGet:    {"MTreeGet", GroupCrypto, ImmNone},
	MTreeSet:    {"MTreeSet", GroupCrypto, ImmNone},
	MTreeMerge:  {"MTreeMerge", GroupCrypto, ImmNone},
	MTreeVerify: {"MTreeVerify", GroupCrypto, ImmNone},

	// Proof verification
	FriExt2Fold4: {"FriExt2Fold4", GroupProof, ImmNone},

	// Exec / call
	ExecLocal:    {"ExecLocal", GroupExec, ImmU16},
	ExecImported: {"ExecImported", GroupExec, ImmProcedureID},
	CallLocal:    {"CallLocal", GroupExec, ImmU16},
	CallMastRoot: {"CallMastRoot", GroupExec, ImmDigest},
	CallImported: {"CallImported", GroupExec, ImmProcedureID},
	SysCall:      {"SysCall", GroupExec, ImmProcedureID},

	// Control flow
	IfElse: {"IfElse", GroupControlFlow, ImmBranches},
	Repeat: {"Repeat", GroupControlFlow, ImmCountedBody},
	While:  {"While", GroupControlFlow, ImmBody},
}
