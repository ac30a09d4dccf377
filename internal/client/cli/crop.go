package cli

import (
	"context"
	"fmt"

	"github.com/krishimitre/krishimitre/internal/client/api"
)

// RecommendCrop collects soil and climate readings and asks the model for
// the best crops to rotate to.
func (a *App) RecommendCrop(ctx context.Context) error {
	return a.gate.Allow(func() error {
		var (
			req api.CropRequest
			err error
		)

		prompts := []struct {
			label string
			dst   *float64
		}{
			{"Nitrogen (N)", &req.N},
			{"Phosphorus (P)", &req.P},
			{"Potassium (K)", &req.K},
			{"Temperature (C)", &req.Temperature},
			{"Humidity (%)", &req.Humidity},
			{"Soil pH", &req.PH},
			{"Rainfall (mm)", &req.Rainfall},
		}
		for _, p := range prompts {
			*p.dst, err = GetFloat(a.reader, p.label, a.out)
			if err != nil {
				return err
			}
		}

		resp, err := a.api.RecommendCrop(ctx, req)
		if err != nil {
			a.printError(err)
			return err
		}

		fmt.Fprintln(a.out, "Recommended crops:")
		for i, c := range resp.TopCrops {
			fmt.Fprintf(a.out, "  %d. %s (%.1f%%)\n", i+1, c.Crop, c.Confidence*100)
		}
		return nil
	})
}
