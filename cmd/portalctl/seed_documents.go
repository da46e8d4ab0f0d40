package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	seedDocumentsDir      string
	seedDocumentsCategory string
)

var seedDocumentsCmd = &cobra.Command{
	Use:   "seed-documents",
	Short: "Batch-load a directory of files into the common document library",
	RunE:  runSeedDocuments,
}

func init() {
	seedDocumentsCmd.Flags().StringVar(&seedDocumentsDir, "dir", "", "directory of documents to load")
	seedDocumentsCmd.Flags().StringVar(&seedDocumentsCategory, "category", "", "category label for every loaded document")
	seedDocumentsCmd.MarkFlagRequired("dir")
}

func runSeedDocuments(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(seedDocumentsDir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	var docs []interface{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !utils.IsAllowedFile(entry.Name()) {
			log.Printf("seed-documents: skipping %s, extension not allowed", entry.Name())
			continue
		}

		data, err := os.ReadFile(filepath.Join(seedDocumentsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		docs = append(docs, model.CommonDocumentItem{
			DocumentID:  uuid.NewString(),
			Title:       documentTitle(entry.Name()),
			Category:    seedDocumentsCategory,
			Filename:    entry.Name(),
			ContentType: utils.MimeTypeFor(entry.Name()),
			Data:        data,
			Size:        int64(len(data)),
			UploadedBy:  "portalctl",
			CreatedAt:   createdAt,
		})
	}

	if len(docs) == 0 {
		log.Println("seed-documents: nothing to load")
		return nil
	}

	db, err := database.NewDatabase()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Client.BatchWriteItem(ctx, model.CommonDocumentsTable, docs, nil); err != nil {
		return fmt.Errorf("batch write: %w", err)
	}

	log.Printf("seed-documents: loaded %d documents", len(docs))
	return nil
}

func documentTitle(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(strings.ReplaceAll(base, "_", " "), "-", " ")
}
