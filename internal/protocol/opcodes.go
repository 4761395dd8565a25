package protocol

// Opcode is the 16-bit packet identifier at the head of every wire
// packet. Opcodes are unique within a Role's
// namespace; the same numeric value may be reused across roles.
type Opcode uint16

// Login server opcodes.
const (
	OpLoginRequest   Opcode = 0x0064 // CA_LOGIN, C->L
	OpLoginKeepAlive Opcode = 0x0200 // C->L, opcode only
	OpLoginAccept    Opcode = 0x0069 // AC_ACCEPT_LOGIN, L->C
	OpLoginFailed    Opcode = 0x006A // AC_REFUSE_LOGIN, L->C
	OpLoginFailed2   Opcode = 0x0081 // AC_NOTIFY_ERROR, L->C
)

// Character server opcodes.
const (
	OpCharacterLoginRequest       Opcode = 0x0065 // CH_ENTER, C->H
	OpCharacterKeepAlive          Opcode = 0x0187 // C->H, account_id
	OpCharacterLoginAccept        Opcode = 0x006B // HC_ACCEPT_ENTER, H->C
	OpCharacterLoginFailed        Opcode = 0x006C // HC_REFUSE_ENTER, H->C
	OpRequestCharacterList        Opcode = 0x09A1 // CH_REQUEST_CHARACTER_LIST, C->H
	OpRequestCharacterListSuccess Opcode = 0x099D // HC_CHARACTER_LIST, H->C
	OpSelectCharacter             Opcode = 0x0066 // CH_SELECT_CHAR, C->H
	OpCharacterSelectionSuccess   Opcode = 0x0071 // HC_NOTIFY_ZONESVR, H->C
	OpCharacterSelectionFailed    Opcode = 0x0840 // H->C
	OpMapServerUnavailable        Opcode = 0x0841 // H->C
	OpCreateCharacter             Opcode = 0x0067 // CH_MAKE_CHAR, C->H
	OpCreateCharacterSuccess      Opcode = 0x006D // HC_ACCEPT_MAKECHAR, H->C
	OpCreateCharacterFailed       Opcode = 0x006E // HC_REFUSE_MAKECHAR, H->C
	OpDeleteCharacter             Opcode = 0x0068 // CH_DELETE_CHAR, C->H
	OpDeleteCharacterSuccess      Opcode = 0x006F // H->C
	OpDeleteCharacterFailed       Opcode = 0x0070 // H->C
	OpSwitchCharacterSlot         Opcode = 0x08D4 // C->H
	OpSwitchCharacterSlotResponse Opcode = 0x08D5 // H->C
)

// Map server opcodes.
const (
	OpMapLoginRequest          Opcode = 0x0072 // CZ_ENTER, C->M
	OpMapLoginSuccess          Opcode = 0x0073 // ZC_ACCEPT_ENTER, M->C
	OpMapLoaded                Opcode = 0x007D // CZ_NOTIFY_ACTORINIT, C->M
	OpRequestMove              Opcode = 0x0085 // CZ_REQUEST_MOVE, C->M
	OpRequestAction            Opcode = 0x0089 // CZ_REQUEST_ACT, C->M
	OpGlobalMessage            Opcode = 0x008C // CZ_REQUEST_CHAT, C->M
	OpRequestServerTick        Opcode = 0x0360 // CZ_REQUEST_TIME, C->M
	OpServerTick               Opcode = 0x007F // ZC_NOTIFY_TIME, M->C
	OpEntityAppeared           Opcode = 0x0078 // ZC_NOTIFY_STANDENTRY, M->C
	OpMovingEntityAppeared     Opcode = 0x007B // ZC_NOTIFY_MOVEENTRY, M->C
	OpEntityMove               Opcode = 0x0086 // ZC_NOTIFY_MOVE, M->C
	OpEntityDisappeared        Opcode = 0x0080 // ZC_NOTIFY_VANISH, M->C
	OpBroadcastMessage         Opcode = 0x009A // M->C
	OpServerMessage            Opcode = 0x008E // M->C
	OpChangeMap                Opcode = 0x0091 // ZC_NPCACK_MAPMOVE, M->C
	OpUpdateStatus             Opcode = 0x00B0 // M->C, acknowledged, no event
	OpUpdateEntityHealth       Opcode = 0x00B1 // M->C
	OpRestartRequest           Opcode = 0x00B2 // CZ_REQ_RESTART, C->M
	OpRestartResponse          Opcode = 0x00B3 // ZC_RESTART_ACK, M->C
	OpDisconnectRequest        Opcode = 0x018A // CZ_REQ_DISCONNECT, C->M
	OpDisconnectResponse       Opcode = 0x018B // ZC_ACK_REQ_DISCONNECT, M->C
	OpStartDialog              Opcode = 0x0090 // C->M
	OpNextDialog               Opcode = 0x00B9 // C->M
	OpCloseDialog              Opcode = 0x0146 // C->M
	OpChooseDialogOption       Opcode = 0x00BA // C->M
	OpNpcDialog                Opcode = 0x00B4 // M->C
	OpNextButton               Opcode = 0x00B5 // M->C
	OpCloseButton              Opcode = 0x00B6 // M->C
	OpChoiceButtons            Opcode = 0x00B7 // M->C
	OpUseSkillAtID             Opcode = 0x0113 // C->M
	OpUseSkillOnGround         Opcode = 0x0116 // C->M
	OpStartUseSkill            Opcode = 0x0437 // C->M, channeled skill start
	OpEndUseSkill              Opcode = 0x0438 // C->M, channeled skill stop
	OpRequestEquipItem         Opcode = 0x00A9 // C->M
	OpRequestEquipItemStatus   Opcode = 0x00AA // M->C
	OpRequestUnequipItem       Opcode = 0x00AB // C->M
	OpRequestUnequipItemStatus Opcode = 0x00AC // M->C
	OpAddFriend                Opcode = 0x0202 // C->M
	OpRemoveFriend             Opcode = 0x0203 // C->M
	OpFriendList               Opcode = 0x0201 // M->C
	OpFriendRequest            Opcode = 0x0207 // M->C
	OpFriendRequestResponse    Opcode = 0x0208 // C->M
	OpFriendRequestResult      Opcode = 0x0209 // M->C
	OpFriendRemoved            Opcode = 0x020A // M->C
)
