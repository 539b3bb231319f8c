package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScheduleSource --dir ../domain/fixturematch --output domain/fixturematch --outpkg fixturematchmock --filename schedule_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name EventSource --dir ../domain/fixturematch --output domain/fixturematch --outpkg fixturematchmock --filename event_source_mock.go
