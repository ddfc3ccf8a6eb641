package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/emurenMRz/mailprep/internal/corpus"
	"github.com/emurenMRz/mailprep/internal/mailbody"
	"github.com/emurenMRz/mailprep/internal/mailheader"
)

func main() {
	var (
		mode      = flag.String("mode", "validate", "Operation mode: validate, show, body")
		msgIndex  = flag.Int("msg", -1, "Message index (for show and body modes)")
		inputPath = flag.String("path", "", "Input maildir directory or mbox file (required)")
		format    = flag.String("format", "", "Archive format: maildir or mbox (default: detect)")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("Error: -path is required")
	}

	messages, err := corpus.Load(*inputPath, *format)
	if err != nil {
		log.Fatal("Failed to read corpus: ", err)
	}

	switch *mode {
	case "validate":
		validateMessages(messages)
	case "show":
		showMessage(messages, *msgIndex)
	case "body":
		showBody(messages, *msgIndex)
	default:
		log.Fatal("Error: Unknown mode. Use validate, show, or body")
	}
}

func validateMessages(messages []corpus.Message) {
	var allResults []mailheader.ValidationResult

	for i, message := range messages {
		meta, _, err := mailheader.Parse(message.Lines)
		if err != nil {
			fmt.Printf("Message %d: cannot parse header of %s (%v)\n", i, message.Source, err)
			continue
		}
		allResults = append(allResults, mailheader.Validate(meta, i)...)
	}

	outputText(allResults)
}

func showMessage(messages []corpus.Message, msgIndex int) {
	message := selectMessage(messages, msgIndex)
	meta, _, err := mailheader.Parse(message.Lines)
	if err != nil {
		log.Fatal("Error: ", err)
	}

	fmt.Printf("Message %d (%s):\n", msgIndex, message.Source)
	fmt.Print(mailheader.Format(meta))
}

func showBody(messages []corpus.Message, msgIndex int) {
	message := selectMessage(messages, msgIndex)
	boundary, err := mailheader.Boundary(message.Lines)
	if err != nil {
		log.Fatal("Error: ", err)
	}
	fmt.Println(mailbody.Extract(message.Lines, boundary))
}

func selectMessage(messages []corpus.Message, msgIndex int) corpus.Message {
	if msgIndex < 0 || msgIndex >= len(messages) {
		log.Fatal("Error: Invalid message index")
	}
	return messages[msgIndex]
}

func outputText(results []mailheader.ValidationResult) {
	if len(results) == 0 {
		fmt.Println("No validation errors found.")
		return
	}

	for _, result := range results {
		switch result.Status {
		case mailheader.StatusMissing:
			fmt.Printf("Message %d: %s header is missing\n", result.MsgIndex, result.Field)
		case mailheader.StatusInvalid:
			fmt.Printf("Message %d: %s header is invalid (%s)\n", result.MsgIndex, result.Field, result.Detail)
		}
	}
}
