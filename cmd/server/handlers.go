package main

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/metrics"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/internal/store"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Multipart fields expected by POST /.
var uploadFields = []string{"enrollments", "courses", "rooms", "lecturers"}

type server struct {
	store     store.Store
	metrics   *metrics.Metrics
	logger    *zap.Logger
	scheduler *scheduler.Configuration
	delimiter rune
}

func (s *server) observe(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	path := ctx.FullPath()
	if path == "" {
		path = "unmatched"
	}
	s.metrics.ObserveHTTPRequest(ctx.Request.Method, path, ctx.Writer.Status(), time.Since(start))
}

func (s *server) handleGetTimetables(ctx *gin.Context) {
	ids, err := s.store.List(ctx.Request.Context())
	if err != nil {
		s.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"timetableIds": ids,
	})
}

func (s *server) handleGetTimetableWithId(ctx *gin.Context) {
	rec, err := s.store.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		s.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data":      rec.Data,
		"valid":     rec.Valid,
		"report":    rec.Report,
		"createdAt": rec.CreatedAt,
	})
}

func (s *server) handleDeleteTimetableWithId(ctx *gin.Context) {
	if err := s.store.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (s *server) handlePostTimetable(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	readers := make(map[string]io.Reader, len(uploadFields))
	var missing error
	for _, field := range uploadFields {
		files := form.File[field]
		if len(files) == 0 {
			missing = multierr.Append(missing, appErrors.Clonef(appErrors.ErrValidation, "missing file %q", field))
			continue
		}
		f, err := open(files[0])
		if err != nil {
			s.fail(ctx, err)
			return
		}
		defer f.Close()
		readers[field] = f
	}
	if missing != nil {
		s.fail(ctx, missing)
		return
	}

	in, err := csvio.ReadInput(csvio.Sources{
		Enrollments: readers["enrollments"],
		Courses:     readers["courses"],
		Rooms:       readers["rooms"],
		Lecturers:   readers["lecturers"],
	}, s.delimiter)
	if err != nil {
		s.fail(ctx, err)
		return
	}

	engine := scheduler.NewEngine(s.scheduler, scheduler.WithLogger(s.logger), scheduler.WithRecorder(s.metrics))
	res, err := engine.Run(ctx.Request.Context(), in)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	data, err := csvio.ExportTimetableString(res.Timetable.Rows())
	if err != nil {
		s.fail(ctx, err)
		return
	}

	rec := &store.Record{Valid: res.Valid, Report: res.Report, Data: data}
	if err := s.store.Save(ctx.Request.Context(), rec); err != nil {
		s.fail(ctx, err)
		return
	}
	s.logger.Info("timetable generated",
		zap.String("id", rec.ID),
		zap.Bool("valid", res.Valid),
		zap.Int("placeholders", res.Stats.Placeholders))

	ctx.JSON(http.StatusOK, gin.H{
		"id":     rec.ID,
		"valid":  res.Valid,
		"manual": res.Manual,
	})
}

func open(fh *multipart.FileHeader) (multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "unreadable upload "+fh.Filename)
	}
	return f, nil
}

// fail maps engine errors onto HTTP statuses.
func (s *server) fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, appErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appErrors.ErrValidation), errors.Is(err, appErrors.ErrDataInconsistency):
		status = http.StatusBadRequest
	case errors.Is(err, appErrors.ErrOutOfRange), errors.Is(err, appErrors.ErrDoubleBooking):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
	}
	e := appErrors.FromError(err)
	ctx.JSON(status, gin.H{"error": gin.H{"code": e.Code, "message": err.Error()}})
}
