package node

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil/base58"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/operation"
)

// AccountMeta names one account of a request, in the order the operation
// expects them.
type AccountMeta struct {
	Address  string `json:"address"`
	Writable bool   `json:"writable"`
}

type RequestBody struct {
	Operation operation.Operation `json:"operation"`
	Accounts  []AccountMeta       `json:"accounts"`
}

// Request is a signed operation. The account whose address is `Signer` is
// handed to the operation as signer.
type Request struct {
	B         RequestBody `json:"body"`
	Signer    string      `json:"signer"`
	Signature string      `json:"signature"`
}

// Receipt is what a node returns for a request. `History` is nil for
// read only operations.
type Receipt struct {
	Hash    string          `json:"hash"`
	History *History        `json:"history,omitempty"`
	Results *entity.Results `json:"results,omitempty"`
}

func NewRequest(op operation.Operation, accounts ...AccountMeta) *Request {
	return &Request{
		B: RequestBody{
			Operation: op,
			Accounts:  accounts,
		},
	}
}

func NewRequestFromJSON(b []byte) (*Request, error) {
	var r Request
	if err := json.Unmarshal(b, &r); err != nil {
		if _, ok := err.(*errors.Error); ok {
			return nil, err
		}
		return nil, errors.InvalidInstructionData.Clone().SetData("error", err.Error())
	}
	return &r, nil
}

func (r Request) Serialize() ([]byte, error) {
	return json.Marshal(r)
}

func (r Request) String() string {
	encoded, _ := common.JSONMarshalIndent(r)
	return string(encoded)
}

func (r Request) GetHash() string {
	return common.MustMakeObjectHashString(r.B)
}

func (r *Request) Sign(kp keypair.KP, networkID []byte) error {
	signature, err := keypair.MakeSignature(kp, networkID, r.GetHash())
	if err != nil {
		return err
	}

	r.Signer = kp.Address()
	r.Signature = base58.Encode(signature)

	return nil
}

func (r Request) VerifySignature(networkID []byte) error {
	kp, err := keypair.Parse(r.Signer)
	if err != nil {
		return errors.BadPublicAddress.Clone().SetData("address", r.Signer)
	}

	signature := base58.Decode(r.Signature)
	if len(signature) < 1 {
		return errors.InvalidSignature
	}
	if err = keypair.VerifySignature(kp, networkID, r.GetHash(), signature); err != nil {
		return errors.InvalidSignature
	}

	return nil
}

// IsWellFormed checks the request without touching the storage. An address
// may only appear once, so every account of an operation is a distinct
// buffer. The read only operations can not ask for writable accounts.
func (r Request) IsWellFormed(config common.Config) (err error) {
	if len(r.B.Accounts) < 1 {
		return errors.NotEnoughAccountKeys
	}

	seen := map[string]bool{}
	var signerFound bool
	for _, meta := range r.B.Accounts {
		if _, err = common.ParseKey(meta.Address); err != nil {
			return
		}
		if seen[meta.Address] {
			return errors.InvalidInstructionData.Clone().SetData("duplicated", meta.Address)
		}
		seen[meta.Address] = true
		if meta.Writable && !r.B.Operation.HasFee() {
			return errors.AccountNotWritable.Clone().SetData("read-only", meta.Address)
		}
		signerFound = signerFound || meta.Address == r.Signer
	}
	if !signerFound {
		return errors.MissingRequiredSignature.Clone().SetData("signer", r.Signer)
	}

	if err = r.B.Operation.IsWellFormed(config); err != nil {
		return
	}

	return r.VerifySignature(config.NetworkID)
}
