package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"etf-grader/internal/education"
	"etf-grader/internal/eligibility"
	"etf-grader/internal/logger"
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Manage the university ranking tables",
}

var rankingsMergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge ARWU, QS and THE exports into one region-tagged world table",
	Run: func(cmd *cobra.Command, _ []string) {
		mergeRankings(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankingsCmd)
	rankingsCmd.AddCommand(rankingsMergeCmd)

	rankingsMergeCmd.Flags().String("arwu", "", "ARWU export CSV")
	rankingsMergeCmd.Flags().String("qs", "", "QS export CSV")
	rankingsMergeCmd.Flags().String("the", "", "THE export CSV")
	rankingsMergeCmd.Flags().String("out", "average_ranking_with_region.csv", "merged output CSV")

	rankingsMergeCmd.MarkFlagRequired("arwu")
	rankingsMergeCmd.MarkFlagRequired("qs")
	rankingsMergeCmd.MarkFlagRequired("the")
}

func mergeRankings(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	flag := func(name string) string {
		value, _ := cmd.Flags().GetString(name)
		return value
	}

	// The three exports do not agree on column names.
	arwu := education.SourceFile{Path: flag("arwu"), NameCol: "Institution", RankCol: "World Rank"}
	qs := education.SourceFile{Path: flag("qs"), NameCol: "Institution Name", RankCol: "Rank", CountryCol: "Country"}
	the := education.SourceFile{Path: flag("the"), NameCol: "Name", RankCol: "Rank", CountryCol: "Country"}

	rows, err := education.Merge(arwu, qs, the, eligibility.RegionForCountry)
	if err != nil {
		zlog.Fatal("merging ranking sources", zap.Error(err))
	}

	out := flag("out")
	if err := education.WriteMerged(out, rows); err != nil {
		zlog.Fatal("writing merged table", zap.Error(err))
	}

	zlog.Info("merged ranking table written",
		zap.String("path", out),
		zap.Int("universities", len(rows)),
	)
}
