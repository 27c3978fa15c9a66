// Package tba computes counterfactual ERC-6551 token-bound account addresses.
//
// The derivation is a pure function of (registry, implementation, salt,
// chainID, tokenContract, tokenID): no RPC round-trip is needed because the
// registry deploys accounts with CREATE2, so the address is known before the
// account contract exists.
package tba

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ERC-1167 minimal proxy bytecode surrounding the implementation address,
// per the ERC-6551 reference registry.
var (
	proxyPrefix = common.Hex2Bytes("3d60ad80600a3d3981f3363d3d373d3d3d363d73")
	proxySuffix = common.Hex2Bytes("5af43d82803e903d91602b57fd5bf3")
)

// Params are the fixed derivation inputs shared by every account.
type Params struct {
	RegistryAddress       common.Address
	ImplementationAddress common.Address
	Salt                  [32]byte
	ChainID               uint64
}

type Calculator struct {
	params Params
}

func NewCalculator(params Params) *Calculator {
	return &Calculator{params: params}
}

// NewCalculatorFromHex builds a calculator from hex-encoded config values.
// The salt must be a 32-byte hex string (0x-prefixed or bare).
func NewCalculatorFromHex(registry, implementation, salt string, chainID uint64) (*Calculator, error) {
	if !common.IsHexAddress(registry) {
		return nil, fmt.Errorf("invalid registry address: %s", registry)
	}
	if !common.IsHexAddress(implementation) {
		return nil, fmt.Errorf("invalid implementation address: %s", implementation)
	}

	saltBytes := common.FromHex(salt)
	if len(saltBytes) != 32 {
		return nil, fmt.Errorf("invalid salt length: expected 32 bytes, got %d", len(saltBytes))
	}

	params := Params{
		RegistryAddress:       common.HexToAddress(registry),
		ImplementationAddress: common.HexToAddress(implementation),
		ChainID:               chainID,
	}
	copy(params.Salt[:], saltBytes)

	return NewCalculator(params), nil
}

// Account computes the token-bound account address for a token.
// The result is deterministic: the same inputs always produce the same
// address, across processes and restarts.
func (c *Calculator) Account(tokenContract string, tokenID uint64) (string, error) {
	if !common.IsHexAddress(tokenContract) {
		return "", fmt.Errorf("invalid token contract address: %s", tokenContract)
	}

	creationCode := c.creationCode(common.HexToAddress(tokenContract), tokenID)

	// CREATE2: keccak256(0xff ++ deployer ++ salt ++ keccak256(init_code))[12:]
	codeHash := crypto.Keccak256(creationCode)
	preimage := make([]byte, 0, 1+common.AddressLength+32+32)
	preimage = append(preimage, 0xff)
	preimage = append(preimage, c.params.RegistryAddress.Bytes()...)
	preimage = append(preimage, c.params.Salt[:]...)
	preimage = append(preimage, codeHash...)

	addr := common.BytesToAddress(crypto.Keccak256(preimage)[12:])
	return addr.Hex(), nil
}

// creationCode assembles the ERC-1167 proxy bytecode plus the ABI-encoded
// constant footer (salt, chainId, tokenContract, tokenId).
func (c *Calculator) creationCode(tokenContract common.Address, tokenID uint64) []byte {
	code := make([]byte, 0, len(proxyPrefix)+common.AddressLength+len(proxySuffix)+4*32)
	code = append(code, proxyPrefix...)
	code = append(code, c.params.ImplementationAddress.Bytes()...)
	code = append(code, proxySuffix...)

	// abi.encode(uint256 salt, uint256 chainId, address tokenContract, uint256 tokenId)
	code = append(code, c.params.Salt[:]...)
	code = append(code, common.BigToHash(new(big.Int).SetUint64(c.params.ChainID)).Bytes()...)
	code = append(code, common.BytesToHash(tokenContract.Bytes()).Bytes()...)
	code = append(code, common.BigToHash(new(big.Int).SetUint64(tokenID)).Bytes()...)

	return code
}
