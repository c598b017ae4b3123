package constants

// States covered by the campaign.
var States = []string{
	"Rajasthan",
	"Andhra Pradesh",
	"Telangana",
	"Karnataka",
	"Tamil Nadu",
	"Kerala",
}

var Positions = []string{
	"State Project Manager",
	"District Project Manager",
	"Project Facilitator",
}

var LegalDocumentTypes = []string{
	"Organization PAN",
	"Owner Photo",
	"DID",
	"Agreement",
	"12A",
	"80G",
	"NGO Darpan",
	"NITI Aayog",
	"Owner PAN",
	"Cancel Cheque",
}

var GalleryCategories = []string{"Projects", "Team", "Events", "Certificates"}

const (
	JobCategoryAll = "All Jobs"
	JobTypeAll     = "All"
)

var JobCategories = []string{
	"NGO Jobs",
	"Private Jobs",
	"Artist Jobs",
	"Work From Home",
	"Local Jobs",
}

var JobTypes = []string{"Full Time", "Part Time", "Volunteer", "Contract"}

// Applicant review status.
const (
	ApplicantPending  = "Pending"
	ApplicantApproved = "Approved"
	ApplicantRejected = "Rejected"
)

var ApplicantStatuses = []string{ApplicantPending, ApplicantApproved, ApplicantRejected}

// Job posting moderation status.
const (
	JobPending  = "pending"
	JobApproved = "approved"
	JobRejected = "rejected"
	JobClosed   = "closed"
)

var JobStatuses = []string{JobPending, JobApproved, JobRejected, JobClosed}

const (
	JobApplicationApplied     = "applied"
	JobApplicationShortlisted = "shortlisted"
	JobApplicationRejected    = "rejected"
	JobApplicationAccepted    = "accepted"
	JobApplicationOnHold      = "on_hold"
)

var JobApplicationStatuses = []string{
	JobApplicationApplied,
	JobApplicationShortlisted,
	JobApplicationRejected,
	JobApplicationAccepted,
	JobApplicationOnHold,
}

// Storage buckets and the folders used inside them.
const (
	BucketApplicantDocuments = "applicant-documents"
	BucketGalleryImages      = "gallery-images"
	BucketLegalDocuments     = "legal-documents"
	BucketManagerPhotos      = "manager-photos"

	FolderResumes = "resumes"
	FolderAadhaar = "aadhaar"
	FolderPhotos  = "photos"
)

const (
	MaxImageBytes    = 5 << 20
	MaxResumeBytes   = 5 << 20
	MaxLegalDocBytes = 10 << 20
)

func Contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
