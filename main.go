// ABOUTME: Entry point for the hotelbook CLI
// ABOUTME: Hotel search, bookings, and account management from the terminal

package main

import (
	"fmt"
	"os"

	"github.com/abhinavhh/hotel-booking-client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
