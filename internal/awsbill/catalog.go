package awsbill

import "strings"

// awsServices is the service catalog used by the simulated data source.
var awsServices = []string{
	"Amazon EC2", "Amazon S3", "Amazon RDS", "AWS Lambda",
	"Amazon CloudFront", "Amazon DynamoDB", "Amazon ECS",
	"Amazon SQS", "Amazon SNS", "AWS Fargate", "Amazon EKS",
	"Amazon ElastiCache", "Amazon Redshift", "AWS Glue",
}

// serviceEventSources maps Cost Explorer service names to the CloudTrail
// event source used for activity lookups.
var serviceEventSources = map[string]string{
	"Amazon EC2":                      "ec2.amazonaws.com",
	"Amazon S3":                       "s3.amazonaws.com",
	"Amazon RDS":                      "rds.amazonaws.com",
	"AWS Lambda":                      "lambda.amazonaws.com",
	"Amazon CloudFront":               "cloudfront.amazonaws.com",
	"Amazon DynamoDB":                 "dynamodb.amazonaws.com",
	"Amazon ECS":                      "ecs.amazonaws.com",
	"Amazon SQS":                      "sqs.amazonaws.com",
	"Amazon SNS":                      "sns.amazonaws.com",
	"AWS Fargate":                     "ecs.amazonaws.com",
	"Amazon EKS":                      "eks.amazonaws.com",
	"Amazon ElastiCache":              "elasticache.amazonaws.com",
	"Amazon Redshift":                 "redshift.amazonaws.com",
	"AWS Glue":                        "glue.amazonaws.com",
	"Amazon CloudWatch":               "monitoring.amazonaws.com",
	"AWS Key Management Service":      "kms.amazonaws.com",
	"Amazon Route 53":                 "route53.amazonaws.com",
	"Amazon API Gateway":              "apigateway.amazonaws.com",
	"AWS Secrets Manager":             "secretsmanager.amazonaws.com",
	"Amazon Elastic Load Balancing":   "elasticloadbalancing.amazonaws.com",
}

// eventSourceFor returns the CloudTrail event source for a service name,
// deriving one from the name when no explicit mapping exists.
func eventSourceFor(service string) string {
	if src, ok := serviceEventSources[service]; ok {
		return src
	}
	simplified := strings.ToLower(service)
	simplified = strings.ReplaceAll(simplified, "amazon ", "")
	simplified = strings.ReplaceAll(simplified, "aws ", "")
	simplified = strings.ReplaceAll(simplified, " ", "")
	return simplified + ".amazonaws.com"
}
