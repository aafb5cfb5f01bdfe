package scraper

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/home-scraper/src/config"
	"github.com/BielosX/wombat/home-scraper/src/detail"
	"github.com/BielosX/wombat/home-scraper/src/home"
	"github.com/BielosX/wombat/home-scraper/src/lookup"
	"github.com/BielosX/wombat/home-scraper/src/s3"
)

type Job func(ctx context.Context, s *Scraper) error

func Rankings(ctx context.Context, s *Scraper) error {
	return s.RunRankings(ctx)
}

func Details(ctx context.Context, s *Scraper) error {
	if err := lookup.CopyAssets(s.cfg.AssetSourceDir, s.cfg.AssetDir, s.sugar); err != nil {
		s.sugar.Errorf("Failed to copy assets: %s", err)
		return err
	}
	tables, err := lookup.LoadTables(s.cfg.AssetDir, s.cfg.Locale)
	if err != nil {
		s.sugar.Errorf("Failed to load name tables: %s", err)
		return err
	}
	return s.RunDetails(ctx, detail.NewFetcher(s.upstream, tables, s.sugar))
}

// Bootstrap wires the upstream client and, when configured, the S3 and
// DynamoDB sinks.
func Bootstrap(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger) (*Scraper, error) {
	client := home.NewClient(sugar, cfg.HomeOptions())
	var opts []Option
	if cfg.UsesAWS() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, err
		}
		if cfg.Bucket != "" {
			opts = append(opts, WithUploader(s3.NewClient(awsCfg, cfg.BucketPrefix)))
		}
		if cfg.RankingTable != "" {
			opts = append(opts, WithRankingTable(dynamodb.NewFromConfig(awsCfg)))
		}
	}
	return New(client, cfg, sugar, opts...), nil
}

// Main runs job once, or as a Lambda handler when _HANDLER is set, and
// exits nonzero on failure.
func Main(name string, job Job) {
	logger, _ := zap.NewDevelopment(zap.AddStacktrace(zap.FatalLevel))
	sugar := logger.Sugar().With("job", name, "run", uuid.NewString())
	code := run(sugar, job)
	_ = sugar.Sync()
	os.Exit(code)
}

func run(sugar *zap.SugaredLogger, job Job) int {
	cfg, err := config.FromEnv()
	if err != nil {
		sugar.Errorf("Failed to load config: %s", err)
		return 2
	}
	ctx := context.Background()
	s, err := Bootstrap(ctx, cfg, sugar)
	if err != nil {
		sugar.Errorf("Failed to load SDK config: %s", err)
		return 2
	}
	if os.Getenv("_HANDLER") != "" {
		lambda.Start(func(ctx context.Context) error {
			return job(ctx, s)
		})
		return 0
	}
	if err := job(ctx, s); err != nil {
		sugar.Errorf("Failed to fetch data: %s", err)
		return 1
	}
	return 0
}
