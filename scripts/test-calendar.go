package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/qt-bible/internal/calendar"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

func main() {
	days := []*schedule.Day{
		{Day: 1, Bible: "민수기 23:27~24:9", Week: "목", Title: "저주 대신 축복을"},
		{Day: 2, Bible: "민수기 25:1~9", Week: "금", Title: "브올의 바알"},
		{Day: 3, Bible: "요한일서 4:7~12", Week: "토"},
	}

	icsContent := calendar.GenerateICS(days, 2025, time.May)

	// Write to file (owner read/write only)
	filename := "test-qt-calendar.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
