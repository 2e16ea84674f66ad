package obligations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"taxgate/internal/obligations"
	"taxgate/internal/obligations/mocks"
	id "taxgate/pkg/domain"
	dErrors "taxgate/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	periods *mocks.MockPeriodSource
	cache   *mocks.MockCache
	service *obligations.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.periods = mocks.NewMockPeriodSource(s.ctrl)
	s.cache = mocks.NewMockCache(s.ctrl)
	s.service = obligations.NewService(s.periods, s.cache)
	obligations.SetNow(s.service, func() time.Time {
		return time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)
	})
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestObligations_DerivesElapsedQuarters() {
	vrn := id.VRN("123456789")

	s.cache.EXPECT().Get(gomock.Any(), vrn, 2024).Return(nil, false, nil)
	s.periods.EXPECT().ListPeriodKeys(gomock.Any(), vrn).Return([]id.PeriodKey{"24A1"}, nil)
	s.cache.EXPECT().Set(gomock.Any(), vrn, 2024, gomock.Any()).Return(nil)

	obs, err := s.service.Obligations(context.Background(), vrn, vrn, 0)
	s.Require().NoError(err)
	s.Require().Len(obs, 3, "Q4 has not started in mid August")

	s.Equal(id.PeriodKey("24A1"), obs[0].PeriodKey)
	s.Equal(obligations.StatusFulfilled, obs[0].Status)
	s.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), obs[0].Start)
	s.Equal(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), obs[0].End)
	s.Equal(time.Date(2024, time.May, 7, 0, 0, 0, 0, time.UTC), obs[0].Due)

	s.Equal(id.PeriodKey("24A2"), obs[1].PeriodKey)
	s.Equal(obligations.StatusOpen, obs[1].Status)

	s.Equal(id.PeriodKey("24A3"), obs[2].PeriodKey)
	s.Equal(obligations.StatusOpen, obs[2].Status)
}

func (s *ServiceSuite) TestObligations_CacheHitShortCircuits() {
	vrn := id.VRN("123456789")
	cached := []obligations.Obligation{{PeriodKey: "24A1", Status: obligations.StatusFulfilled}}

	s.cache.EXPECT().Get(gomock.Any(), vrn, 2024).Return(cached, true, nil)

	obs, err := s.service.Obligations(context.Background(), vrn, vrn, 0)
	s.Require().NoError(err)
	s.Equal(cached, obs)
}

func (s *ServiceSuite) TestObligations_CacheFailureFallsThrough() {
	vrn := id.VRN("123456789")

	s.cache.EXPECT().Get(gomock.Any(), vrn, 2024).Return(nil, false, errors.New("redis down"))
	s.periods.EXPECT().ListPeriodKeys(gomock.Any(), vrn).Return(nil, nil)
	s.cache.EXPECT().Set(gomock.Any(), vrn, 2024, gomock.Any()).Return(errors.New("redis down"))

	obs, err := s.service.Obligations(context.Background(), vrn, vrn, 0)
	s.Require().NoError(err)
	s.Len(obs, 3)
	for _, ob := range obs {
		s.Equal(obligations.StatusOpen, ob.Status)
	}
}

func (s *ServiceSuite) TestObligations_PastYearHasAllQuarters() {
	vrn := id.VRN("123456789")

	s.cache.EXPECT().Get(gomock.Any(), vrn, 2023).Return(nil, false, nil)
	s.periods.EXPECT().ListPeriodKeys(gomock.Any(), vrn).Return([]id.PeriodKey{"23A4"}, nil)
	s.cache.EXPECT().Set(gomock.Any(), vrn, 2023, gomock.Any()).Return(nil)

	obs, err := s.service.Obligations(context.Background(), vrn, vrn, 2023)
	s.Require().NoError(err)
	s.Require().Len(obs, 4)
	s.Equal(id.PeriodKey("23A4"), obs[3].PeriodKey)
	s.Equal(obligations.StatusFulfilled, obs[3].Status)
}

func (s *ServiceSuite) TestObligations_OtherRegistrationForbidden() {
	_, err := s.service.Obligations(context.Background(), id.VRN("111111111"), id.VRN("123456789"), 0)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *ServiceSuite) TestObligations_PeriodSourceFailure() {
	vrn := id.VRN("123456789")

	s.cache.EXPECT().Get(gomock.Any(), vrn, 2024).Return(nil, false, nil)
	s.periods.EXPECT().ListPeriodKeys(gomock.Any(), vrn).Return(nil, errors.New("db down"))

	_, err := s.service.Obligations(context.Background(), vrn, vrn, 0)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestObligations_NilCache() {
	service := obligations.NewService(s.periods, nil)
	obligations.SetNow(service, func() time.Time {
		return time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	})

	s.periods.EXPECT().ListPeriodKeys(gomock.Any(), id.VRN("123456789")).Return(nil, nil)

	obs, err := service.Obligations(context.Background(), "123456789", "123456789", 0)
	s.Require().NoError(err)
	s.Require().Len(obs, 1)
	s.Equal(id.PeriodKey("24A1"), obs[0].PeriodKey)
}
