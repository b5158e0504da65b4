package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"loot-ledger/core/config"
	"loot-ledger/core/journal"
	"loot-ledger/core/ledgerfile"
	"loot-ledger/core/logger"
	"loot-ledger/core/storage"
	"loot-ledger/feature/crossref"
	"loot-ledger/feature/items"
	"loot-ledger/feature/loot"
	"loot-ledger/feature/softres"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// Flags for the run command
	batchRun      bool
	publishRun    bool
	lootImport    string
	softresImport string
)

// runCmd executes the full reconcile pipeline: fold both imports,
// cross-reference, persist, journal, optionally publish.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the loot and soft-reserve exports into the ledgers",
	Long: `Run the reconcile pipeline once.

Both exports are folded into the persisted ledgers, loot events are
cross-referenced against soft reservations, and the updated ledgers are
written back atomically.

Examples:
  # Interactive run with the configured import files
  loot-ledger run

  # Non-interactive run (unclassifiable items degrade to "Unknown")
  loot-ledger run --batch

  # Reconcile and publish the ledgers to the object store
  loot-ledger run --batch --publish`,
	RunE: runReconcile,
}

func init() {
	runCmd.Flags().BoolVar(&batchRun, "batch", false, "Never prompt; degrade unresolvable items to Unknown")
	runCmd.Flags().BoolVar(&publishRun, "publish", false, "Upload the persisted ledgers to the object store afterwards")
	runCmd.Flags().StringVar(&lootImport, "loot-import", "", "Override the loot export path")
	runCmd.Flags().StringVar(&softresImport, "softres-import", "", "Override the soft-reserve export path")

	RootCmd.AddCommand(runCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	l.Info("Starting reconcile run", zap.Bool("batch", batchRun))

	// Runs are single-writer over the persisted ledgers
	release, err := ledgerfile.AcquireLock(cfg.Ledger.LockFile)
	if err != nil {
		return err
	}
	defer release()

	// Roster is mandatory: without it no record can be accepted
	roster, err := loot.LoadRoster(cfg.Ledger.RosterFile)
	if err != nil {
		return err
	}

	bossMap, err := softres.LoadBossMap(cfg.Ledger.BossMapFile, l)
	if err != nil {
		return err
	}
	if len(bossMap) == 0 {
		l.Warn("Boss map is empty, instance resolution degrades to the fallback policy",
			zap.String("path", cfg.Ledger.BossMapFile))
	}

	table, err := items.LoadTable(cfg.Ledger.LookupDir, nil, l)
	if err != nil {
		return err
	}

	var meta items.MetadataService
	if cfg.Items.ClientID != "" {
		meta = items.NewClient(cfg.Items, l)
	} else {
		l.Warn("No metadata service credentials, unknown items degrade to sentinel values")
	}

	var raidPolicy items.RaidPolicy = items.StaticRaidPolicy{}
	var instancePolicy softres.InstancePolicy = softres.StaticInstancePolicy{}
	if !batchRun {
		raidPolicy = items.PromptRaidPolicy{In: os.Stdin, Out: os.Stdout}
		instancePolicy = softres.PromptInstancePolicy{In: os.Stdin, Out: os.Stdout}
	}

	resolver := items.NewResolver(table, meta, raidPolicy, l)
	lootBuilder := loot.NewBuilder(resolver, roster, l)
	softresBuilder := softres.NewBuilder(bossMap, instancePolicy, l)

	// Load prior persisted state; absence or corruption means empty state
	var lootLedger loot.Ledger
	if err := ledgerfile.LoadJSON(cfg.Ledger.LootFile, &lootLedger, l); err != nil {
		return err
	}
	var softresLedger softres.Ledger
	if err := ledgerfile.LoadJSON(cfg.Ledger.SoftresFile, &softresLedger, l); err != nil {
		return err
	}

	lootPath := cfg.Ledger.LootImport
	if lootImport != "" {
		lootPath = lootImport
	}
	softresPath := cfg.Ledger.SoftresImport
	if softresImport != "" {
		softresPath = softresImport
	}

	var (
		lootStats    loot.Stats
		softresStats softres.Stats
	)

	buildLoot := func(ctx context.Context) error {
		f, err := os.Open(lootPath)
		if err != nil {
			return fmt.Errorf("open loot export: %w", err)
		}
		defer f.Close()

		lootLedger, lootStats, err = lootBuilder.Build(ctx, f, lootLedger)
		return err
	}
	buildSoftres := func() error {
		f, err := os.Open(softresPath)
		if err != nil {
			return fmt.Errorf("open soft-reserve export: %w", err)
		}
		defer f.Close()

		softresLedger, softresStats, err = softresBuilder.Build(f, softresLedger)
		return err
	}

	// The builders are independent and may run in parallel, but an
	// interactive run keeps them sequential so prompts don't interleave
	// on the terminal.
	if batchRun {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return buildLoot(gctx) })
		g.Go(buildSoftres)
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		if err := buildLoot(ctx); err != nil {
			return err
		}
		if err := buildSoftres(); err != nil {
			return err
		}
	}

	// Join barrier passed: both ledgers are complete, cross-reference
	xrefStats := crossref.Annotate(lootLedger, softresLedger)

	if err := ledgerfile.SaveJSON(cfg.Ledger.LootFile, lootLedger); err != nil {
		return err
	}
	if err := ledgerfile.SaveJSON(cfg.Ledger.SoftresFile, softresLedger); err != nil {
		return err
	}

	printRunReport(l, lootStats, softresStats, xrefStats)

	published := false
	if publishRun {
		if err := publishLedgers(ctx, cfg.Storage, l, cfg.Ledger.LootFile, cfg.Ledger.SoftresFile); err != nil {
			// Reconciliation already persisted; publishing is best-effort
			l.Error("Publish failed, ledgers remain valid locally", zap.Error(err))
		} else {
			published = true
		}
	}

	recordRun(ctx, cfg.Journal, l, &journal.Run{
		ID:               uuid.NewString(),
		StartedAt:        startedAt,
		FinishedAt:       time.Now(),
		WeekMarker:       lootStats.WeekMarker,
		LootRows:         lootStats.Rows,
		LootMalformed:    lootStats.Malformed,
		OffRoster:        lootStats.OffRoster,
		TrashDropped:     lootStats.Trash,
		SoftresRows:      softresStats.Rows,
		SoftresMalformed: softresStats.Malformed,
		EventsFlagged:    xrefStats.Flagged,
		Published:        published,
	})

	return nil
}

// printRunReport summarizes the run using the logger.
func printRunReport(l *zap.Logger, ls loot.Stats, ss softres.Stats, xs crossref.Stats) {
	l.Info("Reconcile report",
		zap.String("week_marker", ls.WeekMarker),
		zap.Int("loot_rows", ls.Rows),
		zap.Int("loot_malformed", ls.Malformed),
		zap.Int("off_roster", ls.OffRoster),
		zap.Int("trash_dropped", ls.Trash),
		zap.Int("softres_rows", ss.Rows),
		zap.Int("softres_malformed", ss.Malformed),
		zap.Int("softres_unresolved", ss.Unresolved),
		zap.Int("events", xs.Events),
		zap.Int("events_flagged", xs.Flagged),
	)
}

// recordRun journals the run. Journal failures only degrade reporting.
func recordRun(ctx context.Context, cfg journal.Config, l *zap.Logger, run *journal.Run) {
	if cfg.Path == "" {
		return
	}

	j, err := journal.Open(cfg)
	if err != nil {
		l.Warn("Failed to open run journal", zap.Error(err))
		return
	}
	if err := j.Record(ctx, run); err != nil {
		l.Warn("Failed to journal run", zap.Error(err))
		return
	}
	l.Info("Run journaled", zap.String("run_id", run.ID))
}

// publishLedgers uploads the persisted documents to the object store.
func publishLedgers(ctx context.Context, cfg storage.Config, l *zap.Logger, files ...string) error {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}

	for _, file := range files {
		object := cfg.Prefix + "/" + filepath.Base(file)
		if _, err := client.FPutObject(ctx, cfg.Bucket, object, file, minio.PutObjectOptions{
			ContentType: "application/json",
		}); err != nil {
			return fmt.Errorf("upload %s: %w", object, err)
		}
		l.Info("Published ledger", zap.String("object", object), zap.String("bucket", cfg.Bucket))
	}

	return nil
}
