package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

type OperationType string

const (
	TypeCreatePoll         OperationType = "create-poll"
	TypeCancelPoll         OperationType = "cancel-poll"
	TypeCastVote           OperationType = "cast-vote"
	TypeChangeVote         OperationType = "change-vote"
	TypeClosePoll          OperationType = "close-poll"
	TypeGetResults         OperationType = "get-results"
	TypeDecryptResults     OperationType = "decrypt-results"
	TypeDelegateVote       OperationType = "delegate-vote"
	TypeRevokeDelegation   OperationType = "revoke-delegation"
	TypeUpdateTokenBalance OperationType = "update-token-balance"
)

var operationTypes = []string{
	string(TypeCreatePoll),
	string(TypeCancelPoll),
	string(TypeCastVote),
	string(TypeChangeVote),
	string(TypeClosePoll),
	string(TypeGetResults),
	string(TypeDecryptResults),
	string(TypeDelegateVote),
	string(TypeRevokeDelegation),
	string(TypeUpdateTokenBalance),
}

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray(operationTypes, oType)
	return b
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case CreatePoll:
		t = TypeCreatePoll
	case CancelPoll:
		t = TypeCancelPoll
	case CastVote:
		t = TypeCastVote
	case ChangeVote:
		t = TypeChangeVote
	case ClosePoll:
		t = TypeClosePoll
	case GetResults:
		t = TypeGetResults
	case DecryptResults:
		t = TypeDecryptResults
	case DelegateVote:
		t = TypeDelegateVote
	case RevokeDelegation:
		t = TypeRevokeDelegation
	case UpdateTokenBalance:
		t = TypeUpdateTokenBalance
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

func MustNewOperation(opb Body) Operation {
	op, err := NewOperation(opb)
	if err != nil {
		panic(err)
	}
	return op
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that the body is self consistent
	//
	// Only the checks which need neither the accounts nor the clock belong
	// here; everything else is done by the handler of the operation.
	//
	// Params:
	//   config = Engine configuration
	//
	// Returns:
	//   An `error` if the body is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error

	// HasFee is false only for the read only operations.
	HasFee() bool
}

// Payable is a body which carries the serialized fee transaction.
type Payable interface {
	Body
	GetFeeTx() []byte
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	return o.B.IsWellFormed(conf)
}

func (o Operation) HasFee() bool {
	return o.B.HasFee()
}

func (o Operation) String() string {
	encoded, _ := common.JSONMarshalIndent(o)

	return string(encoded)
}

func (o Operation) Serialize() ([]byte, error) {
	return json.Marshal(o)
}

func (o Operation) MakeHash() []byte {
	return common.MustMakeObjectHash(o)
}

func (o Operation) MakeHashString() string {
	return common.MustMakeObjectHashString(o)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return errors.InvalidInstructionData.Clone().SetData("error", err.Error())
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, errors.InvalidInstructionData.Clone().SetData("error", err.Error())
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeCreatePoll:
		return &CreatePoll{}, nil
	case TypeCancelPoll:
		return &CancelPoll{}, nil
	case TypeCastVote:
		return &CastVote{}, nil
	case TypeChangeVote:
		return &ChangeVote{}, nil
	case TypeClosePoll:
		return &ClosePoll{}, nil
	case TypeGetResults:
		return &GetResults{}, nil
	case TypeDecryptResults:
		return &DecryptResults{}, nil
	case TypeDelegateVote:
		return &DelegateVote{}, nil
	case TypeRevokeDelegation:
		return &RevokeDelegation{}, nil
	case TypeUpdateTokenBalance:
		return &UpdateTokenBalance{}, nil
	default:
		return nil, errors.UnknownOperationType.Clone().SetData("type", ty)
	}
}
