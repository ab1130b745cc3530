// Package logger wraps zerolog for voicelist. Lines are JSON in production
// and a compact "[VOI][INF]" console form during development; the choice
// comes from the logging block of config.yml:
//
//	logging:
//	  level: info
//	  format: console
//	  output: stdout
//
// Component loggers tag every line, and WithContext adds the request ID
// that the HTTP middleware stored on the request context:
//
//	log := logger.WithComponent("transcription").WithContext(ctx)
//	log.Info("Transcribed", logger.Fields(logger.FieldDuration, 812))
package logger
