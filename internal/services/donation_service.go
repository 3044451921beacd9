package services

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

var (
	ErrInvalidAccount   = errors.New("invalid account")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrNotATransfer     = errors.New("transaction is not a single SOL transfer")
)

// systemTransferIndex is the instruction index of Transfer in the system program
const systemTransferIndex = 2

// BlockhashProvider supplies the recent blockhash a transaction template is built on
type BlockhashProvider interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

type rpcBlockhashProvider struct {
	client *rpc.Client
}

func NewRPCBlockhashProvider(rpcURL string) BlockhashProvider {
	return &rpcBlockhashProvider{client: rpc.New(rpcURL)}
}

func (p *rpcBlockhashProvider) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := p.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	return result.Value.Blockhash, nil
}

// TransferSummary describes a decoded donation transaction
type TransferSummary struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Lamports  uint64 `json:"lamports"`
	Blockhash string `json:"blockhash"`
	Signed    bool   `json:"signed"`
}

// DonationService builds the unsigned transaction template returned by the donate-sol action.
// Nothing is signed or broadcast here.
type DonationService interface {
	Metadata(actionURL string, params models.DonateSolParams) models.ActionGetResponse
	BuildTransfer(ctx context.Context, account string, params models.DonateSolParams, amount string) (*models.ActionPostResponse, error)
	DecodeTransfer(encoded string) (*TransferSummary, error)
}

type donationService struct {
	blockhash BlockhashProvider
}

func NewDonationService(blockhash BlockhashProvider) DonationService {
	return &donationService{blockhash: blockhash}
}

// Metadata is the Solana Actions GET payload. actionURL is the donate-sol URL
// without the amount, used as the base of every linked action.
func (s *donationService) Metadata(actionURL string, params models.DonateSolParams) models.ActionGetResponse {
	return models.ActionGetResponse{
		Icon:        params.ImageURL,
		Title:       params.Title,
		Description: params.Description,
		Label:       fmt.Sprintf("Donate %s SOL", params.BaseAmount),
		Links: &models.ActionLinks{
			Actions: []models.LinkedAction{
				{
					Label: fmt.Sprintf("Donate %s SOL", params.BaseAmount),
					Href:  withQuery(actionURL, "amount", url.QueryEscape(params.BaseAmount)),
				},
				{
					Label: "Donate",
					Href:  withQuery(actionURL, "amount", "{amount}"),
					Parameters: []models.ActionParameter{
						{Name: "amount", Label: "Enter a SOL amount", Required: true},
					},
				},
			},
		},
	}
}

func (s *donationService) BuildTransfer(ctx context.Context, account string, params models.DonateSolParams, amount string) (*models.ActionPostResponse, error) {
	from, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}
	to, err := solana.PublicKeyFromBase58(params.Recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	if amount == "" {
		amount = params.BaseAmount
	}
	lamports, err := utils.SolToLamports(amount)
	if err != nil {
		return nil, err
	}

	blockhash, err := s.blockhash.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, from, to).Build(),
		},
		blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	// empty signature slots for the wallet to fill in
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}

	return &models.ActionPostResponse{
		Transaction: base64.StdEncoding.EncodeToString(raw),
		Message:     fmt.Sprintf("Donate %s SOL to %s", amount, params.Recipient),
	}, nil
}

func (s *donationService) DecodeTransfer(encoded string) (*TransferSummary, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	if len(tx.Message.Instructions) != 1 {
		return nil, ErrNotATransfer
	}
	instruction := tx.Message.Instructions[0]
	program, err := tx.Message.Program(instruction.ProgramIDIndex)
	if err != nil || !program.Equals(solana.SystemProgramID) {
		return nil, ErrNotATransfer
	}
	data := []byte(instruction.Data)
	if len(data) != 12 || binary.LittleEndian.Uint32(data[:4]) != systemTransferIndex || len(instruction.Accounts) != 2 {
		return nil, ErrNotATransfer
	}

	signed := false
	for _, sig := range tx.Signatures {
		if sig != (solana.Signature{}) {
			signed = true
		}
	}

	return &TransferSummary{
		From:      tx.Message.AccountKeys[instruction.Accounts[0]].String(),
		To:        tx.Message.AccountKeys[instruction.Accounts[1]].String(),
		Lamports:  binary.LittleEndian.Uint64(data[4:]),
		Blockhash: tx.Message.RecentBlockhash.String(),
		Signed:    signed,
	}, nil
}

// withQuery appends key=value to rawURL. value must already be escaped so the
// literal {amount} template survives.
func withQuery(rawURL, key, value string) string {
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + key + "=" + value
}
