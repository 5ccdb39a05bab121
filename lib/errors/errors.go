package errors

// call shape
var (
	NotEnoughAccountKeys     = NewError(100, "not enough account keys")
	MissingRequiredSignature = NewError(101, "missing required signature")
	InvalidAccountData       = NewError(102, "invalid account data")
	InvalidInstructionData   = NewError(103, "invalid instruction data")
	AccountDataTooSmall      = NewError(104, "account data too small")
	AccountNotWritable       = NewError(105, "account is not writable")
	UnknownOperationType     = NewError(106, "unknown operation type")
	InvalidSignature         = NewError(107, "invalid signature")
	BadPublicAddress         = NewError(108, "bad public address")
)

// storage
var (
	StorageRecordDoesNotExist  = NewError(200, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(201, "record already exists in storage")
	StorageCoreError           = NewError(202, "storage error")
)

// voting
var (
	InvalidPollParameters   = NewError(1001, "invalid poll parameters")
	PollAlreadyExists       = NewError(1002, "poll already exists")
	PollDoesNotExist        = NewError(1003, "poll does not exist")
	PollNotActive           = NewError(1004, "poll is not active")
	PollNotStarted          = NewError(1005, "poll has not started yet")
	PollEnded               = NewError(1006, "poll has already ended")
	NotPollCreator          = NewError(1007, "only the creator can perform this action")
	AlreadyVoted            = NewError(1008, "voter has already voted")
	RevotingNotAllowed      = NewError(1009, "revoting is not allowed for this poll")
	InvalidOptionIndex      = NewError(1010, "invalid option index")
	InvalidVoteWeight       = NewError(1011, "invalid vote weight")
	InvalidDelegation       = NewError(1012, "invalid delegation")
	DelegationExpired       = NewError(1013, "delegation expired")
	InvalidZkProof          = NewError(1014, "invalid zero-knowledge proof")
	InvalidEncryption       = NewError(1015, "invalid encryption")
	InsufficientFees        = NewError(1016, "insufficient fees")
	InvalidFeeTransaction   = NewError(1017, "invalid fee transaction")
	PollAlreadyStarted      = NewError(1018, "poll already started")
	PollNotEncrypted        = NewError(1019, "poll is not encrypted")
	ResultsAlreadyFinalized = NewError(1020, "results already finalized")
	InvalidDecryptionKey    = NewError(1021, "invalid decryption key")
	PollStillActive         = NewError(1022, "poll still active")
	DelegationNotFound      = NewError(1023, "delegation not found")
	NotDelegator            = NewError(1024, "not delegator")
	TokenBalanceNotFound    = NewError(1025, "token balance not found")
	InvalidToken            = NewError(1026, "invalid token")
	MissingNonce            = NewError(1027, "missing nonce")
	DelegationAlreadyExists = NewError(1028, "delegation already exists")
)
