//////////////////////////////////////////////////////
// main.go
// standalone perft runner
//////////////////////////////////////////////////////

package main

import (
	"flag"
	"log"
	"os"
	"time"

	shogi "github.com/nozaq/shogi-go"
)

func main() {
	// set up logging
	log.SetOutput(os.Stdout)
	log.SetPrefix("")
	log.SetFlags(0)

	sfen := flag.String("sfen", "", "SFEN record to start from (default: the standard starting position)")
	depth := flag.Int("depth", 4, "perft depth")
	flag.Parse()

	shogi.InitAttackTables()

	pos := shogi.NewPosition()
	if *sfen == "" {
		pos.PutStartingPosition()
	} else {
		parsed, err := shogi.ParseSfen(*sfen)
		if err != nil {
			log.Fatalf("bad sfen: %v", err)
		}
		pos = parsed
	}

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n := shogi.Perft(pos, d)
		log.Printf("perft %d: %d nodes in %s", d, n, time.Since(start))
	}
}
