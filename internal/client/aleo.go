package client

import (
	"context"
	"fmt"

	"github.com/veleo-lab/backend/pkg/api"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

// AleoTransaction is the document the wallet bridge expects. Field names and
// input encodings must not change, the bridge forwards them to the network
// as-is.
type AleoTransaction struct {
	Address     string           `json:"address"`
	ChainID     string           `json:"chainId"`
	Transitions []AleoTransition `json:"transitions"`
	Fee         int64            `json:"fee"`
	FeePrivate  bool             `json:"feePrivate"`
}

type AleoTransition struct {
	Program      string   `json:"program"`
	FunctionName string   `json:"functionName"`
	Inputs       []string `json:"inputs"`
}

type AleoCaller interface {
	SubmitClaim(ctx context.Context, address, eventID, code string, claimedAtMs int64) (string, error)
}

type aleoCaller struct {
	generator api.Generator
}

func NewAleoCaller(domain string) *aleoCaller {
	return &aleoCaller{generator: api.NewGenerator(domain)}
}

// SubmitClaim records a badge claim on chain through the wallet bridge and
// returns the transaction id.
func (c *aleoCaller) SubmitClaim(
	ctx context.Context, address, eventID, code string, claimedAtMs int64,
) (string, error) {
	cfg := xcontext.Configs(ctx).Aleo
	tx := AleoTransaction{
		Address: address,
		ChainID: cfg.ChainID,
		Transitions: []AleoTransition{
			{
				Program:      cfg.ProgramID,
				FunctionName: "claim_badge",
				Inputs: []string{
					fmt.Sprintf("%dfield", Hash31(eventID)),
					fmt.Sprintf("%dfield", Hash31(code)),
					fmt.Sprintf("%du64", claimedAtMs),
				},
			},
		},
		Fee:        cfg.Fee,
		FeePrivate: cfg.FeePrivate,
	}

	body := api.JSON{
		"address":     tx.Address,
		"chainId":     tx.ChainID,
		"transitions": tx.Transitions,
		"fee":         tx.Fee,
		"feePrivate":  tx.FeePrivate,
	}

	resp, err := c.generator.New("/transactions").Body(body).POST(ctx)
	if err != nil {
		return "", err
	}

	if resp.Code != 200 && resp.Code != 201 {
		return "", fmt.Errorf("wallet bridge responded with status %d", resp.Code)
	}

	result, ok := resp.Body.(api.JSON)
	if !ok {
		return "", fmt.Errorf("unexpected response shape")
	}

	txID, err := result.GetString("transactionId")
	if err != nil {
		return "", err
	}

	return txID, nil
}

// Hash31 folds a string into a non-negative 31-bit integer. The program on
// chain identifies events and codes by this value, so the folding must stay
// stable.
func Hash31(s string) int64 {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}

	if h < 0 {
		return -int64(h)
	}

	return int64(h)
}
