package ethereum

//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
	"github.com/situs-protocol/situs-indexer/internal/domain"
)

// Client is a read-only view over the Situs factory, OG, and ensurance
// contracts. All calls are eth_call; nothing here writes to chain.
type Client interface {
	// OGNames returns the list of OG names registered on the factory contract
	OGNames(ctx context.Context, factoryAddress string) ([]string, error)

	// OGAddress resolves an OG name to its collection contract address
	OGAddress(ctx context.Context, factoryAddress, ogName string) (string, error)

	// TotalSupply returns the mint counter of a collection contract
	TotalSupply(ctx context.Context, contractAddress string) (uint64, error)

	// DomainName returns the account name minted under a token ID. Returns
	// domain.ErrTokenNotFound for token IDs that have never been minted.
	DomainName(ctx context.Context, contractAddress string, tokenID uint64) (string, error)

	// CollectionName returns the collection's name() value
	CollectionName(ctx context.Context, contractAddress string) (string, error)

	// OwnerOf returns the current holder of a token
	OwnerOf(ctx context.Context, contractAddress string, tokenID uint64) (string, error)

	// TokenURI returns the metadata URI of an ensurance token
	TokenURI(ctx context.Context, contractAddress string, tokenID uint64) (string, error)

	// CreatorRewardRecipient returns the reward split address of an ensurance token
	CreatorRewardRecipient(ctx context.Context, contractAddress string, tokenID uint64) (string, error)

	// Close closes the underlying connection
	Close()
}

type ethereumClient struct {
	client adapter.EthClient
}

// NewClient creates a chain reader backed by the given RPC client
func NewClient(client adapter.EthClient) Client {
	return &ethereumClient{client: client}
}

// callView packs a view call, executes it, and returns the raw result bytes
func (c *ethereumClient) callView(ctx context.Context, contractAddress string, parsedABI abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := parsedABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	return result, nil
}

// OGNames returns the list of OG names registered on the factory contract
func (c *ethereumClient) OGNames(ctx context.Context, factoryAddress string) ([]string, error) {
	// Factory function signature: getTldsArray() returns (string[])
	tldsABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"getTldsArray","outputs":[{"name":"","type":"string[]"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, factoryAddress, tldsABI, "getTldsArray")
	if err != nil {
		return nil, err
	}

	var names []string
	if err := tldsABI.UnpackIntoInterface(&names, "getTldsArray", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	return names, nil
}

// OGAddress resolves an OG name to its collection contract address
func (c *ethereumClient) OGAddress(ctx context.Context, factoryAddress, ogName string) (string, error) {
	// Factory function signature: tldNamesAddresses(string) returns (address)
	tldAddrABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"","type":"string"}],"name":"tldNamesAddresses","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, factoryAddress, tldAddrABI, "tldNamesAddresses", ogName)
	if err != nil {
		return "", err
	}

	var addr common.Address
	if err := tldAddrABI.UnpackIntoInterface(&addr, "tldNamesAddresses", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return addr.Hex(), nil
}

// TotalSupply returns the mint counter of a collection contract
func (c *ethereumClient) TotalSupply(ctx context.Context, contractAddress string) (uint64, error) {
	// ERC721 totalSupply function signature: totalSupply() returns (uint256)
	totalSupplyABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return 0, fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, contractAddress, totalSupplyABI, "totalSupply")
	if err != nil {
		return 0, err
	}

	var supply *big.Int
	if err := totalSupplyABI.UnpackIntoInterface(&supply, "totalSupply", result); err != nil {
		return 0, fmt.Errorf("failed to unpack result: %w", err)
	}

	if !supply.IsUint64() {
		return 0, fmt.Errorf("total supply out of range: %s", supply.String())
	}

	return supply.Uint64(), nil
}

// DomainName returns the account name minted under a token ID
func (c *ethereumClient) DomainName(ctx context.Context, contractAddress string, tokenID uint64) (string, error) {
	// Collection function signature: domainIdsNames(uint256) returns (string)
	domainNameABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"","type":"uint256"}],"name":"domainIdsNames","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, contractAddress, domainNameABI, "domainIdsNames", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	var name string
	if err := domainNameABI.UnpackIntoInterface(&name, "domainIdsNames", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	// The contract's domainIdsNames mapping returns its zero value for token
	// IDs that were never minted
	if name == "" {
		return "", domain.ErrTokenNotFound
	}

	return name, nil
}

// CollectionName returns the collection's name() value
func (c *ethereumClient) CollectionName(ctx context.Context, contractAddress string) (string, error) {
	// ERC721 name function signature: name() returns (string)
	nameABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, contractAddress, nameABI, "name")
	if err != nil {
		return "", err
	}

	var name string
	if err := nameABI.UnpackIntoInterface(&name, "name", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return name, nil
}

// OwnerOf returns the current holder of a token
func (c *ethereumClient) OwnerOf(ctx context.Context, contractAddress string, tokenID uint64) (string, error) {
	// ERC721 ownerOf function signature: ownerOf(uint256) returns (address)
	ownerOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, contractAddress, ownerOfABI, "ownerOf", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	var owner common.Address
	if err := ownerOfABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return owner.Hex(), nil
}

// TokenURI returns the metadata URI of an ensurance token
func (c *ethereumClient) TokenURI(ctx context.Context, contractAddress string, tokenID uint64) (string, error) {
	// ERC1155 uri function signature: uri(uint256) returns (string)
	uriABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, contractAddress, uriABI, "uri", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	var uri string
	if err := uriABI.UnpackIntoInterface(&uri, "uri", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return uri, nil
}

// CreatorRewardRecipient returns the reward split address of an ensurance token
func (c *ethereumClient) CreatorRewardRecipient(ctx context.Context, contractAddress string, tokenID uint64) (string, error) {
	// Ensurance function signature: creatorRewardRecipient(uint256) returns (address)
	recipientABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"creatorRewardRecipient","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.callView(ctx, contractAddress, recipientABI, "creatorRewardRecipient", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	var recipient common.Address
	if err := recipientABI.UnpackIntoInterface(&recipient, "creatorRewardRecipient", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return recipient.Hex(), nil
}

// Close closes the underlying connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
