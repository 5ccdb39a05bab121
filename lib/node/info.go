package node

import (
	"encoding/json"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/version"
)

type NodeInfo struct {
	Node   NodeInfoNode `json:"node"`
	Policy NodePolicy   `json:"policy"`
}

type NodeInfoNode struct {
	Version NodeVersion `json:"version"`
	Started string      `json:"started"`
	State   State       `json:"state"`
	Time    uint64      `json:"time"`
}

type NodePolicy struct {
	NetworkID            string `json:"network-id"`
	MaxTitleLength       int    `json:"max-title-length"`
	MaxDescriptionLength int    `json:"max-description-length"`
	MinOptions           int    `json:"min-options"`
	MaxOptions           int    `json:"max-options"`
	MaxOptionLength      int    `json:"max-option-length"`
	MaxEarlyVoterBonus   uint8  `json:"max-early-voter-bonus"`
	RateLimitRuleAPI     string `json:"rate-limit-api"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

func NewNodeInfo(config common.Config, started string, state State, now uint64) NodeInfo {
	return NodeInfo{
		Node: NodeInfoNode{
			Version: NodeVersion{
				Version:   version.Version,
				GitCommit: version.GitCommit,
				GitState:  version.GitState,
				BuildDate: version.BuildDate,
			},
			Started: started,
			State:   state,
			Time:    now,
		},
		Policy: NodePolicy{
			NetworkID:            string(config.NetworkID),
			MaxTitleLength:       config.MaxTitleLength,
			MaxDescriptionLength: config.MaxDescriptionLength,
			MinOptions:           config.MinOptions,
			MaxOptions:           config.MaxOptions,
			MaxOptionLength:      config.MaxOptionLength,
			MaxEarlyVoterBonus:   config.MaxEarlyVoterBonus,
			RateLimitRuleAPI:     config.RateLimitAPI,
		},
	}
}

func NewNodeInfoFromJSON(b []byte) (nodeInfo NodeInfo, err error) {
	err = json.Unmarshal(b, &nodeInfo)
	return
}
