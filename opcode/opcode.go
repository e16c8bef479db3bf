package opcode

// OpCode is the single-byte tag written in front of every serialized
// instruction. Values are grouped by function and are part of the wire
// format: a published value never changes and is never reused.
type OpCode byte

// Canonical tag values.
const (
	// Field operations
	Assert       OpCode = 0
	AssertEq     OpCode = 1
	AssertEqw    OpCode = 2
	Assertz      OpCode = 3
	Add          OpCode = 4
	AddImm       OpCode = 5
	Sub          OpCode = 6
	SubImm       OpCode = 7
	Mul          OpCode = 8
	MulImm       OpCode = 9
	Div          OpCode = 10
	DivImm       OpCode = 11
	Neg          OpCode = 12
	Inv          OpCode = 13
	Incr         OpCode = 14
	Pow2         OpCode = 15
	Exp          OpCode = 16
	ExpImm       OpCode = 17
	ExpBitLength OpCode = 18
	Not          OpCode = 19
	And          OpCode = 20
	Or           OpCode = 21
	Xor          OpCode = 22
	Eq           OpCode = 23
	EqImm        OpCode = 24
	Neq          OpCode = 25
	NeqImm       OpCode = 26
	Eqw          OpCode = 27
	Lt           OpCode = 28
	Lte          OpCode = 29
	Gt           OpCode = 30
	Gte          OpCode = 31
	IsOdd        OpCode = 32

	// Extension field (ext2) operations
	Ext2Add OpCode = 33
	Ext2Sub OpCode = 34
	Ext2Mul OpCode = 35
	Ext2Div OpCode = 36
	Ext2Neg OpCode = 37
	Ext2Inv OpCode = 38

	// u32 operations
	U32Test               OpCode = 39
	U32TestW              OpCode = 40
	U32Assert             OpCode = 41
	U32Assert2            OpCode = 42
	U32AssertW            OpCode = 43
	U32Split              OpCode = 44
	U32Cast               OpCode = 45
	U32CheckedAdd         OpCode = 46
	U32CheckedAddImm      OpCode = 47
	U32WrappingAdd        OpCode = 48
	U32WrappingAddImm     OpCode = 49
	U32OverflowingAdd     OpCode = 50
	U32OverflowingAddImm  OpCode = 51
	U32OverflowingAdd3    OpCode = 52
	U32WrappingAdd3       OpCode = 53
	U32CheckedSub         OpCode = 54
	U32CheckedSubImm      OpCode = 55
	U32WrappingSub        OpCode = 56
	U32WrappingSubImm     OpCode = 57
	U32OverflowingSub     OpCode = 58
	U32OverflowingSubImm  OpCode = 59
	U32CheckedMul         OpCode = 60
	U32CheckedMulImm      OpCode = 61
	U32WrappingMul        OpCode = 62
	U32WrappingMulImm     OpCode = 63
	U32OverflowingMul     OpCode = 64
	U32OverflowingMulImm  OpCode = 65
	U32OverflowingMadd    OpCode = 66
	U32WrappingMadd       OpCode = 67
	U32CheckedDiv         OpCode = 68
	U32CheckedDivImm      OpCode = 69
	U32UncheckedDiv       OpCode = 70
	U32UncheckedDivImm    OpCode = 71
	U32CheckedMod         OpCode = 72
	U32CheckedModImm      OpCode = 73
	U32UncheckedMod       OpCode = 74
	U32UncheckedModImm    OpCode = 75
	U32CheckedDivMod      OpCode = 76
	U32CheckedDivModImm   OpCode = 77
	U32UncheckedDivMod    OpCode = 78
	U32UncheckedDivModImm OpCode = 79
	U32CheckedAnd         OpCode = 80
	U32CheckedOr          OpCode = 81
	U32CheckedXor         OpCode = 82
	U32CheckedNot         OpCode = 83
	U32CheckedShr         OpCode = 84
	U32CheckedShrImm      OpCode = 85
	U32UncheckedShr       OpCode = 86
	U32UncheckedShrImm    OpCode = 87
	U32CheckedShl         OpCode = 88
	U32CheckedShlImm      OpCode = 89
	U32UncheckedShl       OpCode = 90
	U32UncheckedShlImm    OpCode = 91
	U32CheckedRotr        OpCode = 92
	U32CheckedRotrImm     OpCode = 93
	U32UncheckedRotr      OpCode = 94
	U32UncheckedRotrImm   OpCode = 95
	U32CheckedRotl        OpCode = 96
	U32CheckedRotlImm     OpCode = 97
	U32UncheckedRotl      OpCode = 98
	U32UncheckedRotlImm   OpCode = 99
	U32CheckedPopcnt      OpCode = 100
	U32UncheckedPopcnt    OpCode = 101
	U32CheckedEq          OpCode = 102
	U32CheckedEqImm       OpCode = 103
	U32CheckedNeq         OpCode = 104
	U32CheckedNeqImm      OpCode = 105
	U32CheckedLt          OpCode = 106
	U32UncheckedLt        OpCode = 107
	U32CheckedLte         OpCode = 108
	U32UncheckedLte       OpCode = 109
	U32CheckedGt          OpCode = 110
	U32UncheckedGt        OpCode = 111
	U32CheckedGte         OpCode = 112
	U32UncheckedGte       OpCode = 113
	U32CheckedMin         OpCode = 114
	U32UncheckedMin       OpCode = 115
	U32CheckedMax         OpCode = 116
	U32UncheckedMax       OpCode = 117

	// Stack manipulation
	Drop    OpCode = 118
	DropW   OpCode = 119
	PadW    OpCode = 120
	Dup0    OpCode = 121
	Dup1    OpCode = 122
	Dup2    OpCode = 123
	Dup3    OpCode = 124
	Dup4    OpCode = 125
	Dup5    OpCode = 126
	Dup6    OpCode = 127
	Dup7    OpCode = 128
	Dup8    OpCode = 129
	Dup9    OpCode = 130
	Dup10   OpCode = 131
	Dup11   OpCode = 132
	Dup12   OpCode = 133
	Dup13   OpCode = 134
	Dup14   OpCode = 135
	Dup15   OpCode = 136
	DupW0   OpCode = 137
	DupW1   OpCode = 138
	DupW2   OpCode = 139
	DupW3   OpCode = 140
	Swap1   OpCode = 141
	Swap2   OpCode = 142
	Swap3   OpCode = 143
	Swap4   OpCode = 144
	Swap5   OpCode = 145
	Swap6   OpCode = 146
	Swap7   OpCode = 147
	Swap8   OpCode = 148
	Swap9   OpCode = 149
	Swap10  OpCode = 150
	Swap11  OpCode = 151
	Swap12  OpCode = 152
	Swap13  OpCode = 153
	Swap14  OpCode = 154
	Swap15  OpCode = 155
	SwapW1  OpCode = 156
	SwapW2  OpCode = 157
	SwapW3  OpCode = 158
	SwapDW  OpCode = 159
	MovUp2  OpCode = 160
	MovUp3  OpCode = 161
	MovUp4  OpCode = 162
	MovUp5  OpCode = 163
	MovUp6  OpCode = 164
	MovUp7  OpCode = 165
	MovUp8  OpCode = 166
	MovUp9  OpCode = 167
	MovUp10 OpCode = 168
	MovUp11 OpCode = 169
	MovUp12 OpCode = 170
	MovUp13 OpCode = 171
	MovUp14 OpCode = 172
	MovUp15 OpCode = 173
	MovUpW2 OpCode = 174
	MovUpW3 OpCode = 175
	MovDn2  OpCode = 176
	MovDn3  OpCode = 177
	MovDn4  OpCode = 178
	MovDn5  OpCode = 179
	MovDn6  OpCode = 180
	MovDn7  OpCode = 181
	MovDn8  OpCode = 182
	MovDn9  OpCode = 183
	MovDn10 OpCode = 184
	MovDn11 OpCode = 185
	MovDn12 OpCode = 186
	MovDn13 OpCode = 187
	MovDn14 OpCode = 188
	MovDn15 OpCode = 189
	MovDnW2 OpCode = 190
	MovDnW3 OpCode = 191
	CSwap   OpCode = 192
	CSwapW  OpCode = 193
	CDrop   OpCode = 194
	CDropW  OpCode = 195

	// Input / output and memory
	PushU8       OpCode = 196
	PushU16      OpCode = 197
	PushU32      OpCode = 198
	PushFelt     OpCode = 199
	PushWord     OpCode = 200
	PushU8List   OpCode = 201
	PushU16List  OpCode = 202
	PushU32List  OpCode = 203
	PushFeltList OpCode = 204
	Locaddr      OpCode = 205
	Sdepth       OpCode = 206
	Caller       OpCode = 207
	Clk          OpCode = 208
	MemLoad      OpCode = 209
	MemLoadImm   OpCode = 210
	MemLoadW     OpCode = 211
	MemLoadWImm  OpCode = 212
	LocLoad      OpCode = 213
	LocLoadW     OpCode = 214
	MemStore     OpCode = 215
	MemStoreImm  OpCode = 216
	LocStore     OpCode = 217
	MemStoreW    OpCode = 218
	MemStoreWImm OpCode = 219
	LocStoreW    OpCode = 220
	MemStream    OpCode = 221
	AdvPipe      OpCode = 222
	AdvPush      OpCode = 223
	AdvLoadW     OpCode = 224
	AdvInject    OpCode = 225

	// Cryptographic operations
	Hash        OpCode = 226
	HMerge      OpCode = 227
	HPerm       OpCode = 228
	MTreeGet    OpCode = 229
	MTreeSet    OpCode = 230
	MTreeMerge  OpCode = 231
	MTreeVerify OpCode = 232

	// Proof verification
	FriExt2Fold4 OpCode = 233

	// Exec / call
	ExecLocal    OpCode = 234
	ExecImported OpCode = 235
	CallLocal    OpCode = 236
	CallMastRoot OpCode = 237
	CallImported OpCode = 238
	SysCall      OpCode = 239

	// Control flow
	// 240-252 are reserved and must never be assigned.
	IfElse OpCode = 253
	Repeat OpCode = 254
	While  OpCode = 255
)
