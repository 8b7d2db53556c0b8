package main

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

var reportDistrict int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a readable summary of the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		snap, err := st.LatestSnapshot(ctx)
		if err != nil {
			return err
		}
		if snap == nil {
			return eris.New("no snapshot stored yet; run `schoolutil run` first")
		}

		pr := message.NewPrinter(language.English)

		if reportDistrict != 0 {
			s, ok := snap.Districts[reportDistrict]
			if !ok {
				return eris.Errorf("district %d has no data in the latest snapshot", reportDistrict)
			}
			printDistrict(pr, s)
			return nil
		}

		c := snap.Citywide
		pr.Fprintf(os.Stdout, "Citywide Summary (%d)\n", snap.Year)
		pr.Fprintf(os.Stdout, "  Buildings measured:        %d\n", c.TotalBuildings)
		pr.Fprintf(os.Stdout, "  Total enrollment:          %d\n", c.TotalEnrollment)
		pr.Fprintf(os.Stdout, "  Total capacity:            %d\n", c.TotalCapacity)
		pr.Fprintf(os.Stdout, "  Weighted utilization:      %.1f%%\n", c.WeightedUtilization*100)
		pr.Fprintf(os.Stdout, "  Overcapacity buildings:    %d (%.2f%%)\n", c.Overcapacity, c.PctOvercapacity)
		pr.Fprintf(os.Stdout, "  Median bldg utilization:   %.1f%%\n", c.MedianUtilization*100)
		pr.Fprintf(os.Stdout, "  Median bldgs per district: %.0f\n", c.MedianBuildings)
		pr.Fprintf(os.Stdout, "  Median district overcap:   %.2f%%\n", c.MedianPctOvercapacity)
		for _, band := range model.Bands() {
			pr.Fprintf(os.Stdout, "  %-25s %d\n", string(band)+":", c.BandCounts[band])
		}

		pr.Fprintf(os.Stdout, "\nDistricts\n")
		districts := make([]int, 0, len(snap.Districts))
		for d := range snap.Districts {
			districts = append(districts, d)
		}
		sort.Ints(districts)
		for _, d := range districts {
			s := snap.Districts[d]
			pr.Fprintf(os.Stdout, "  %2d %-13s bldgs=%-4d util=%5.1f%%  overcap=%5.2f%%  rank=%d\n",
				s.District, s.Borough, s.TotalBuildings,
				s.WeightedUtilization*100, s.PctOvercapacity, s.RankByOvercapacity)
		}
		if len(snap.NoData) > 0 {
			pr.Fprintf(os.Stdout, "  no data: %v\n", snap.NoData)
		}

		return nil
	},
}

func printDistrict(pr *message.Printer, s *model.DistrictSummary) {
	pr.Fprintf(os.Stdout, "District %d Summary\n", s.District)
	pr.Fprintf(os.Stdout, "  Borough:                %s\n", s.Borough)
	pr.Fprintf(os.Stdout, "  Neighborhoods:          %s\n", s.Neighborhoods)
	pr.Fprintf(os.Stdout, "  Buildings measured:     %d\n", s.TotalBuildings)
	pr.Fprintf(os.Stdout, "  Total enrollment:       %d\n", s.TotalEnrollment)
	pr.Fprintf(os.Stdout, "  Total capacity:         %d\n", s.TotalCapacity)
	pr.Fprintf(os.Stdout, "  Weighted utilization:   %.1f%%\n", s.WeightedUtilization*100)
	pr.Fprintf(os.Stdout, "  Overcapacity buildings: %d (%.2f%%)\n", s.Overcapacity, s.PctOvercapacity)
	pr.Fprintf(os.Stdout, "  Rank by overcapacity:   %d\n", s.RankByOvercapacity)
	pr.Fprintf(os.Stdout, "  Median utilization:     %.1f%%\n", s.MedianUtilization*100)
	pr.Fprintf(os.Stdout, "  Max utilization:        %.1f%%\n", s.MaxUtilization*100)
	for _, band := range model.Bands() {
		pr.Fprintf(os.Stdout, "  %-22s %d\n", string(band)+":", s.BandCounts[band])
	}
}

func init() {
	reportCmd.Flags().IntVar(&reportDistrict, "district", 0, "report a single district (1-32)")
	rootCmd.AddCommand(reportCmd)
}
