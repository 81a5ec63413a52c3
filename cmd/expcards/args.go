package main

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	errHelp         = errors.New("help requested")
	errBadArguments = errors.New("Please enter valid arguments, or use -h or --help for help")
	errBadIntegers  = errors.New("Please enter two valid integers. Use -h or --help for help")
	errHandTooSmall = errors.New("There cannot be more black cards in your hand than total cards in your hand")
)

const helpText = `
---------------------HELP--------------------------------------
To find the expected outcome before the state of the game, run the program without arguments.
Otherwise, provide two integers as arguments. The first is the number of black cards in the player's
hand, and cannot be > %d, and the second is the total number of cards in the player's hand, and cannot be > %d.
Use the argument -h or --help to see this message.
Use --deck-size to change the number of cards of each color, and --print-table to dump the whole table.`

func help(deckSize int) string {
	return fmt.Sprintf(helpText, deckSize, 2*deckSize)
}

// parseArgs validates the positional arguments: nothing (a fresh deck),
// or the black cards and total cards in the player's hand.
func parseArgs(args []string, deckSize int) (black, hand int, err error) {
	switch len(args) {
	case 0:
		return 0, 0, nil
	case 1:
		if args[0] == "help" {
			return 0, 0, errHelp
		}
		return 0, 0, errBadArguments
	case 2:
	default:
		return 0, 0, errBadArguments
	}
	black, err = strconv.Atoi(args[0])
	if err != nil || black < 0 || black > deckSize {
		return 0, 0, errBadIntegers
	}
	hand, err = strconv.Atoi(args[1])
	if err != nil || hand < 0 || hand > 2*deckSize {
		return 0, 0, errBadIntegers
	}
	if hand < black {
		return 0, 0, errHandTooSmall
	}
	return black, hand, nil
}
