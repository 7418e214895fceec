// Command inspect dumps the user and message tables of a running or stopped
// store in read-only mode, for operational debugging.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type userRow struct {
	Handle       string `json:"handle"`
	RegisteredAt int64  `json:"registered_at"`
}

type messageRow struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Body   string `json:"body"`
	SentAt int64  `json:"sent_at"`
	Seq    uint64 `json:"seq"`
}

func main() {
	dbPath := flag.String("db", "", "Path to the badger store")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (user: or msg:)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("-db is required")
	}

	// BypassLockGuard allows opening while the server holds the lock.
	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	switch {
	case strings.HasPrefix(*prefix, "user:"):
		err = dumpUsers(db, *prefix)
	default:
		err = dumpMessages(db, *prefix)
	}
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
}

func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func dumpUsers(db *badger.DB, prefix string) error {
	color.Green.Println("Registered identities")
	table := newTable([]string{"Handle", "Registered At"})

	count := 0
	err := scan(db, prefix, func(key string, val []byte) {
		var row userRow
		if err := json.Unmarshal(val, &row); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return
		}
		table.Append([]string{row.Handle, time.Unix(row.RegisteredAt, 0).UTC().Format(time.RFC822)})
		count++
	})
	if err != nil {
		return err
	}

	table.Render()
	color.Gray.Printf("%d identities\n", count)
	return nil
}

func dumpMessages(db *badger.DB, prefix string) error {
	color.Green.Println("Message ledger")
	table := newTable([]string{"Sent At", "Seq", "From", "To", "Body"})

	count := 0
	err := scan(db, prefix, func(key string, val []byte) {
		var row messageRow
		if err := json.Unmarshal(val, &row); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return
		}
		table.Append([]string{
			time.Unix(0, row.SentAt).UTC().Format(time.RFC3339),
			fmt.Sprintf("%d", row.Seq),
			row.From,
			row.To,
			row.Body,
		})
		count++
	})
	if err != nil {
		return err
	}

	table.Render()
	color.Gray.Printf("%d messages\n", count)
	return nil
}

func scan(db *badger.DB, prefix string, visit func(key string, val []byte)) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			// Skip the sequence bookkeeping key
			if strings.HasPrefix(string(item.Key()), "seq:") {
				continue
			}
			key := string(item.Key())
			if err := item.Value(func(v []byte) error {
				visit(key, v)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
