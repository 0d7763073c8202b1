package score

import (
	"database/sql"
	"encoding/json"
	"log"

	"git.lost.host/meutraa/ebms/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// A Score accumulates judgment outcomes into rank counters, combo and
// the final point total. It never errors; every update is a handful of
// integer operations.
type Score struct {
	Judges      [game.RankCount]int
	Combo       int
	MaxCombo    int
	ComboBonus  int
	Point       int
	TotalJudges int
	TotalNotes  int
}

func (s *Score) Judge(rank game.Rank) {
	s.TotalJudges++
	s.Judges[rank]++
	if rank == game.RankMiss {
		s.foldCombo()
		return
	}
	s.Combo++
}

// foldCombo banks the running combo: max combo, then the combo bonus,
// then a reset. Folding a zero combo contributes nothing.
func (s *Score) foldCombo() {
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.ComboBonus += comboBonus(s.Combo, s.TotalNotes)
	s.Combo = 0
}

// comboBonus is undefined for charts of five playable notes or fewer,
// where the denominator 2t-11 goes non-positive.
func comboBonus(combo, total int) int {
	c := combo
	p := c - 11
	if p < 0 {
		p = -p
	}
	return 1250 * (c*c - (c-10)*p + 19*c - 110) / (2*total - 11)
}

func (s *Score) Finish() {
	s.foldCombo()
	t := s.TotalNotes
	if t == 0 {
		return
	}
	s.Point = 75000*s.Judges[game.RankCool]/t +
		(50000*s.Judges[game.RankGreat]+10000*s.Judges[game.RankGood])/t +
		s.ComboBonus
}

func (s *Score) Result() Result {
	return Result{Judges: s.Judges, MaxCombo: s.MaxCombo, Point: s.Point}
}

// DefaultScorer is a Score with a sqlite history behind it. Database
// failures are logged and swallowed; losing a history row never aborts
// a play session.
type DefaultScorer struct {
	Score
	db *sql.DB
}

func NewDefaultScorer(totalNotes int) *DefaultScorer {
	return &DefaultScorer{Score: Score{TotalNotes: totalNotes}}
}

func (s *DefaultScorer) Init(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  speed real,
		  auto integer,
		  result bytearray
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(sum string, speed float64, auto bool) {
	if nil == s.db {
		return
	}
	data, err := json.Marshal(s.Result())
	if nil != err {
		log.Println("unable to marshal result", err)
		return
	}
	_, err = s.db.Exec("insert into results(sum, speed, auto, result) values(?, ?, ?, ?)",
		sum, speed, auto, data)
	if nil != err {
		log.Println("unable to save result", err)
	}
}

func (s *DefaultScorer) Load(sum string) []History {
	histories := []History{}
	if nil == s.db {
		return histories
	}
	rows, err := s.db.Query("select sum, speed, auto, result from results where sum = ?", sum)
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load results", err)
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		var blob []byte
		rows.Scan(&h.Sum, &h.Speed, &h.Auto, &blob)
		if err := json.Unmarshal(blob, &h.Result); nil != err {
			log.Println("unable to unmarshal result history")
			continue
		}
		histories = append(histories, h)
	}
	return histories
}
