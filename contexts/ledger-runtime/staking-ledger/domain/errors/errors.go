package errors

import "errors"

var (
	ErrInsufficientBalance       = errors.New("insufficient free balance")
	ErrInsufficientStakedBalance = errors.New("insufficient staked balance")
	ErrBalanceOverflow           = errors.New("balance arithmetic overflow")
)
