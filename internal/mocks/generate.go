package mocks

//go:generate mockery --name Repository --srcpkg github.com/aevon-lab/sift/internal/dataset --output ./dataset --outpkg datasetmocks --with-expecter
//go:generate mockery --name RecordSource --srcpkg github.com/aevon-lab/sift/internal/query --output ./query --outpkg querymocks --with-expecter
