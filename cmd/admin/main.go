package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/store"
)

func main() {
	var (
		migrate  = flag.Bool("migrate", false, "创建或更新全部数据表后退出")
		contacts = flag.Int("contacts", 0, "按提交时间倒序打印最近 N 条联系表单")
	)
	flag.Parse()

	if !*migrate && *contacts <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database, gormlogger.Warn)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	if *migrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("auto migrate: %v", err)
		}
		fmt.Printf("已完成数据表迁移（driver=%s）\n", cfg.Database.Driver)
	}

	if *contacts > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		submissions, err := store.NewContactStore(db).Recent(ctx, *contacts)
		if err != nil {
			log.Fatalf("list contact submissions: %v", err)
		}
		printContacts(submissions)
	}
}

func printContacts(submissions []database.ContactSubmission) {
	if len(submissions) == 0 {
		fmt.Println("暂无联系表单")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBMITTED\tID\tNAME\tEMAIL\tMESSAGE")
	for _, s := range submissions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.SubmittedAt.Format(time.RFC3339),
			s.ID,
			valueOrDash(s.Name),
			valueOrDash(s.Email),
			truncate(valueOrDash(s.Message), 60),
		)
	}
	_ = w.Flush()
}

func valueOrDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return strings.Join(strings.Fields(*s), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
