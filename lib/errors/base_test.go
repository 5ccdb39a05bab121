package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, PollAlreadyExists, PollAlreadyExists)

	e := PollAlreadyExists
	e0 := PollAlreadyExists.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.Code = 200
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsEqual(t *testing.T) {
	e := PollNotStarted.Clone().SetData("start", 100)
	require.True(t, Is(e, PollNotStarted))
	require.False(t, Is(e, PollEnded))
	require.False(t, Is(fmt.Errorf("1005"), PollNotStarted))
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(PollAlreadyExists)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(PollAlreadyExists)
		require.NoError(t, err)

		e := PollAlreadyExists.Clone()
		e.SetData("findme", "killme")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}

func TestErrorsCodesAreUnique(t *testing.T) {
	all := []*Error{
		NotEnoughAccountKeys, MissingRequiredSignature, InvalidAccountData,
		InvalidInstructionData, AccountDataTooSmall, AccountNotWritable,
		UnknownOperationType, InvalidSignature, BadPublicAddress,
		StorageRecordDoesNotExist, StorageRecordAlreadyExists, StorageCoreError,
		InvalidPollParameters, PollAlreadyExists, PollDoesNotExist, PollNotActive,
		PollNotStarted, PollEnded, NotPollCreator, AlreadyVoted, RevotingNotAllowed,
		InvalidOptionIndex, InvalidVoteWeight, InvalidDelegation, DelegationExpired,
		InvalidZkProof, InvalidEncryption, InsufficientFees, InvalidFeeTransaction,
		PollAlreadyStarted, PollNotEncrypted, ResultsAlreadyFinalized,
		InvalidDecryptionKey, PollStillActive, DelegationNotFound, NotDelegator,
		TokenBalanceNotFound, InvalidToken, MissingNonce, DelegationAlreadyExists,
	}

	seen := map[uint]string{}
	for _, e := range all {
		_, found := seen[e.Code]
		require.False(t, found, "duplicated code %d", e.Code)
		seen[e.Code] = e.Message
	}

	require.Equal(t, uint(1001), InvalidPollParameters.Code)
	require.Equal(t, uint(1027), MissingNonce.Code)
}
