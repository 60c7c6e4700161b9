package export

import (
	"time"

	"github.com/tealeg/xlsx"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
)

// ToExcel writes the user's audio jobs to an xlsx file.
func ToExcel(jobs []model.AudioJob, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("AudioJobs")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Job ID"
	headerRow.AddCell().Value = "Owner"
	headerRow.AddCell().Value = "Original Name"
	headerRow.AddCell().Value = "Status"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Last Updated"
	headerRow.AddCell().Value = "Transcription Result"

	for _, job := range jobs {
		row := sheet.AddRow()
		row.AddCell().Value = job.JobID
		row.AddCell().Value = job.OwnerID
		row.AddCell().Value = job.OriginalName
		row.AddCell().Value = string(job.Status)
		row.AddCell().Value = job.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = job.LastUpdated.Format(time.RFC3339)
		row.AddCell().Value = string(job.TranscriptionResult)
	}

	return file.Save(outputFilePath)
}
