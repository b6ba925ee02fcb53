package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/webtech/cameralog/internal/config"
	"github.com/webtech/cameralog/internal/model"
	"github.com/webtech/cameralog/internal/repository"
	"github.com/webtech/cameralog/internal/storage"
)

func CamerasCmd() *cobra.Command {
	var duplicates bool

	camerasCmd := &cobra.Command{
		Use:   "cameras",
		Short: "List camera records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				cameras, err := repository.NewCameraRepository(database).Cameras(cmd.Context())
				if err != nil {
					return err
				}
				if duplicates {
					cameras = sharedCredentials(cameras)
				}
				return printCameras(cmd.OutOrStdout(), cameras)
			})
		},
	}

	camerasCmd.Flags().BoolVar(&duplicates, "duplicates", false, "only show records whose email and date are shared with another record")

	camerasCmd.AddCommand(cameraDeleteCmd())

	return camerasCmd
}

// cameraDeleteCmd is the maintenance counterpart of /delete/{id}: the web
// route leaves photo files behind, --photo removes them too.
func cameraDeleteCmd() *cobra.Command {
	var withPhoto bool

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a camera record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid camera id %q", args[0])
			}

			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				var store storage.Storage
				if withPhoto {
					store, err = storage.New(cfg)
					if err != nil {
						return fmt.Errorf("failed to initialize storage: %w", err)
					}
				}

				err = deleteCamera(cmd.Context(), repository.NewCameraRepository(database), store, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted camera %d\n", id)
				return nil
			})
		},
	}

	deleteCmd.Flags().BoolVar(&withPhoto, "photo", false, "also remove the stored photo")

	return deleteCmd
}

// deleteCamera removes the record, and its photo when store is non-nil.
func deleteCamera(ctx context.Context, repo repository.CameraRepository, store storage.Storage, id int64) error {
	camera, err := repo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load camera %d: %w", id, err)
	}

	err = repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete camera %d: %w", id, err)
	}

	if store != nil && camera.HasPhoto() {
		err = store.Delete(*camera.Photo)
		if err != nil {
			return fmt.Errorf("failed to delete photo %s: %w", *camera.Photo, err)
		}
	}

	return nil
}

// sharedCredentials keeps records whose (email, date) pair appears more than
// once. Login picks the lowest id of such a group.
func sharedCredentials(cameras []*model.Camera) []*model.Camera {
	counts := make(map[[2]string]int)
	for _, c := range cameras {
		counts[[2]string{c.Email, c.Date}]++
	}

	var shared []*model.Camera
	for _, c := range cameras {
		if counts[[2]string{c.Email, c.Date}] > 1 {
			shared = append(shared, c)
		}
	}
	return shared
}

func printCameras(w io.Writer, cameras []*model.Camera) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBRAND\tMODEL\tTYPE\tEMAIL\tDATE\tPHOTO")
	for _, c := range cameras {
		photo := "-"
		if c.HasPhoto() {
			photo = *c.Photo
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Brand, c.Model, c.Type, c.Email, c.Date, photo)
	}
	return tw.Flush()
}

