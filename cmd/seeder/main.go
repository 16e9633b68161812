// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/poiesic/caretrack"
	"github.com/poiesic/caretrack/config"
	"github.com/poiesic/caretrack/core"
	"github.com/urfave/cli/v2"
)

var profiles = []core.NewContact{
	{
		Name:                   "Ana Souza",
		Age:                    12,
		IntellectualDisability: "Transtorno do Espectro Autista",
		AssistanceLevel:        core.AssistanceModerate,
		CID:                    "F84.0",
		Stereotypies:           []string{"balançar as mãos"},
		Likes:                  []string{"música", "desenhar"},
		Dislikes:               []string{"barulho alto"},
		Communication:          &core.Communication{Verbal: "frases curtas", Symbols: "PECS"},
	},
	{
		Name:                   "Bruno Lima",
		Age:                    17,
		IntellectualDisability: "Síndrome de Down",
		AssistanceLevel:        core.AssistanceMild,
		CID:                    "Q90",
		Stereotypies:           []string{},
		Likes:                  []string{"futebol", "culinária"},
		Dislikes:               []string{"filas"},
		Mobility:               &core.Mobility{Locomotion: "independente"},
	},
	{
		Name:                   "Carla Mendes",
		Age:                    9,
		IntellectualDisability: "Deficiência intelectual moderada",
		AssistanceLevel:        core.AssistanceSevere,
		CID:                    "F71",
		Stereotypies:           []string{"girar objetos"},
		Likes:                  []string{"piscina"},
		Dislikes:               []string{"roupas apertadas"},
		Medications: []core.Medication{
			{ID: "med-1", Name: "Risperidona", Dosage: "1mg", Frequency: "12", Effects: []string{"sonolência"}},
		},
	},
}

var notes = []string{
	"Acordou tranquilo e tomou café sem ajuda.",
	"Participou da sessão de fonoaudiologia por 40 minutos.",
	"Ficou agitado na saída da escola, acalmou com música.",
	"Comeu toda a refeição e experimentou um legume novo.",
	"Brincou no parque com os primos.",
	"Conseguiu amarrar o tênis sozinho pela primeira vez.",
	"Recusou o banho, aceitou depois de usar o quadro de rotina.",
	"Consulta com o neurologista marcada para a próxima semana.",
	"Dormiu cedo após um dia de muitas atividades.",
	"Usou o PECS para pedir água durante a terapia.",
	"Teve dificuldade em esperar a vez no jogo.",
	"Ajudou a preparar o lanche da tarde.",
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// seedClock starts at start and advances by step on every call.
func seedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

// seed registers up to count sample contacts and spreads the notes from
// source across them, cycling through the activity types. Blank lines are
// skipped. It returns the number of notes written.
func seed(j *caretrack.Journal, source iter.Seq[string], count int) (int, error) {
	if count < 1 || count > len(profiles) {
		return 0, fmt.Errorf("contacts must be between 1 and %d", len(profiles))
	}

	ids := make([]string, 0, count)
	for _, p := range profiles[:count] {
		ids = append(ids, j.Contacts().AddContact(p).ID)
	}

	written := 0
	for line := range source {
		if line == "" {
			continue
		}
		id := ids[written%len(ids)]
		activity := core.ActivityTypes[written%len(core.ActivityTypes)]
		j.Contacts().AddMessage(id, line, true, nil, activity)
		written++
	}
	return written, nil
}

func seedCommand(c *cli.Context) error {
	cfg, err := config.Load(&config.Config{Badger: config.Badger{Dir: c.String("db")}})
	if err != nil {
		return err
	}

	days := c.Int("days")
	if days < 1 {
		return fmt.Errorf("days must be greater than 0")
	}
	start := time.Now().UTC().AddDate(0, 0, -days)

	j, err := caretrack.Open(context.Background(), cfg,
		caretrack.WithClock(seedClock(start, 3*time.Hour)))
	if err != nil {
		return err
	}
	defer j.Close()

	source := linesFromSlice(notes)
	if src := c.String("src"); src != "" {
		source, err = linesFromFile(src)
		if err != nil {
			return err
		}
	}

	written, err := seed(j, source, c.Int("contacts"))
	if err != nil {
		return err
	}
	slog.Info("seeded journal", "db", cfg.Badger.Dir, "contacts", c.Int("contacts"), "notes", written)
	return nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	app := &cli.App{
		Name:  "seeder",
		Usage: "Fill a caretrack journal with sample contacts and notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to BadgerDB database directory",
				Value: "./caretrack_demo",
			},
			&cli.StringFlag{
				Name:  "src",
				Usage: "File of notes, one per line",
			},
			&cli.IntFlag{
				Name:  "contacts",
				Usage: "Number of sample contacts",
				Value: len(profiles),
			},
			&cli.IntFlag{
				Name:  "days",
				Usage: "How many days back the notes start",
				Value: 7,
			},
		},
		Action: seedCommand,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
